package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify creates a notification for userID. Type defaults to system and
// priority to low.
func (s *NotificationService) Notify(userID uint, notificationType, title, message, priority string) (*models.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, BadRequest("Notification title is required")
	}
	if notificationType == "" {
		notificationType = models.NotificationTypeSystem
	}
	if priority == "" {
		priority = models.PriorityLow
	}

	n := &models.Notification{
		UserID:   userID,
		Type:     notificationType,
		Title:    title,
		Priority: priority,
	}
	if message != "" {
		n.Message = &message
	}

	if err := s.DB.Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkAsRead flags one of the user's notifications as read
func (s *NotificationService) MarkAsRead(notificationID, userID uint) (*models.Notification, error) {
	n, err := s.findOwn(notificationID, userID)
	if err != nil {
		return nil, err
	}
	if !n.IsRead {
		if err := s.DB.Model(n).Update("is_read", true).Error; err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
		n.IsRead = true
	}
	return n, nil
}

// MarkAllAsRead flags every unread notification of the user and returns the
// number updated
func (s *NotificationService) MarkAllAsRead(userID uint) (int64, error) {
	result := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(notificationID, userID uint) error {
	n, err := s.findOwn(notificationID, userID)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(n).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// UnreadCount returns the number of unread notifications for the user
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) findOwn(notificationID, userID uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Notification not found")
		}
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}
	return &n, nil
}

// SendEmailNotification relays an ad-hoc email through mailer. A nil mailer
// means mail is not configured.
func SendEmailNotification(ctx context.Context, mailer Mailer, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return BadRequest("to, subject, and body are required")
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return BadRequest("Invalid recipient address")
	}
	if mailer == nil {
		return Unavailable("Mail service not configured")
	}

	if err := mailer.Send(ctx, NewPlainEmail(to, subject, body)); err != nil {
		return Internal("Failed to send email: %v", err)
	}
	return nil
}
