package models

import (
	"time"
)

// MessageTimeLayout is the clock format shown next to chat messages
const MessageTimeLayout = "03:04 PM"

// Message is a directed chat message between two users
type Message struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	SentAt     time.Time `gorm:"autoCreateTime;index" json:"sent_at"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

type MessageResponse struct {
	ID         uint    `json:"id"`
	SenderID   uint    `json:"senderId"`
	ReceiverID uint    `json:"receiverId"`
	Text       string  `json:"text"`
	From       string  `json:"from"`
	Time       *string `json:"time"`
	IsRead     bool    `json:"isRead"`
}

// ToResponseFor serializes the message from the point of view of viewerID,
// setting from to "me" or "them"
func (m *Message) ToResponseFor(viewerID uint) MessageResponse {
	from := "them"
	if m.SenderID == viewerID {
		from = "me"
	}

	resp := MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Content,
		From:       from,
		IsRead:     m.IsRead,
	}
	if !m.SentAt.IsZero() {
		t := m.SentAt.Format(MessageTimeLayout)
		resp.Time = &t
	}
	return resp
}
