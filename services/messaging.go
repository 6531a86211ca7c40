package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

// messagePreviewLength is the rune cap on a contact's last-message preview
const messagePreviewLength = 50

// Contact is a messaging counterparty with a preview of the conversation
type Contact struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Online  bool   `json:"online"`
	LastMsg string `json:"lastMsg"`
	Time    string `json:"time"`
	Unread  int64  `json:"unread"`

	lastAt time.Time
}

// ListContacts returns everyone the user has exchanged messages with, most
// recent conversation first. With no history every other user is returned.
func ListContacts(db *gorm.DB, user *models.User) ([]Contact, error) {
	var history []models.Message
	err := db.Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).
		Order("sent_at DESC").Order("id DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	latest := make(map[uint]*models.Message)
	unread := make(map[uint]int64)
	var ids []uint
	for i := range history {
		m := &history[i]
		other := m.SenderID
		if other == user.ID {
			other = m.ReceiverID
		}
		if _, seen := latest[other]; !seen {
			latest[other] = m
			ids = append(ids, other)
		}
		if m.ReceiverID == user.ID && !m.IsRead {
			unread[other]++
		}
	}

	var users []models.User
	query := db.Order("name ASC").Order("id ASC")
	if len(ids) == 0 {
		query = query.Where("id <> ?", user.ID)
	} else {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	contacts := make([]Contact, 0, len(users))
	for _, u := range users {
		c := Contact{
			ID:     u.ID,
			Name:   u.Name,
			Role:   capitalize(u.Role),
			Email:  u.Email,
			Unread: unread[u.ID],
		}
		if m, ok := latest[u.ID]; ok {
			c.LastMsg = truncate(m.Content, messagePreviewLength)
			c.Time = m.SentAt.Format(models.MessageTimeLayout)
			c.lastAt = m.SentAt
		}
		contacts = append(contacts, c)
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := contacts[i].lastAt, contacts[j].lastAt
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})

	return contacts, nil
}

// OpenConversation marks the contact's unread messages to user as read and
// returns the full history between the two, oldest first
func OpenConversation(db *gorm.DB, user *models.User, contactID uint) ([]models.Message, error) {
	if _, err := GetUserByID(db, contactID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", contactID, user.ID, false).
			Update("is_read", true).Error
		if err != nil {
			return fmt.Errorf("failed to mark messages read: %w", err)
		}

		return tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			user.ID, contactID, contactID, user.ID).
			Order("sent_at ASC").Order("id ASC").
			Find(&messages).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage stores a sanitized message from user to receiverID
func SendMessage(db *gorm.DB, user *models.User, receiverID uint, content string) (*models.Message, error) {
	content = SanitizeContent(content)
	if receiverID == 0 || content == "" {
		return nil, BadRequest("receiverId and content are required")
	}
	if receiverID == user.ID {
		return nil, BadRequest("Cannot send a message to yourself")
	}

	if _, err := GetUserByID(db, receiverID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NotFound("Receiver not found")
		}
		return nil, err
	}

	msg := &models.Message{SenderID: user.ID, ReceiverID: receiverID, Content: content}
	if err := db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
