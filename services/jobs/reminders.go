package jobs

import (
	"context"
	"fmt"
	"time"

	"legal_cms_go/models"
	"legal_cms_go/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderInterval is how often the server scans for tomorrow's hearings
const ReminderInterval = time.Hour

// SendHearingReminders notifies the advocate and the petitioner of every
// scheduled hearing that falls on the day after now. Each hearing is
// reminded once. A nil mailer skips email and only creates notifications.
// It returns the number of hearings reminded.
func SendHearingReminders(ctx context.Context, database *gorm.DB, mailer services.Mailer, now time.Time) (int, error) {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var hearings []models.Hearing
	err := database.WithContext(ctx).
		Preload("Case").Preload("Case.Advocate").Preload("Case.PetitionerUser").
		Where("status = ?", models.HearingStatusScheduled).
		Where("date >= ? AND date < ?", tomorrow, tomorrow.AddDate(0, 0, 1)).
		Where("reminder_sent_at IS NULL").
		Order("id ASC").
		Find(&hearings).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load hearings for reminders: %w", err)
	}

	notifier := services.NewNotificationService(database.WithContext(ctx))
	sent := 0
	for i := range hearings {
		h := &hearings[i]
		if h.Case == nil {
			continue
		}

		at := "during the day"
		if h.StartTime != nil {
			at = "at " + h.StartTime.Format("3:04 PM")
		}
		message := fmt.Sprintf("%s %s %s", h.Case.CaseNumber, h.Type, at)

		for _, u := range []*models.User{h.Case.Advocate, h.Case.PetitionerUser} {
			if u == nil {
				continue
			}
			if _, err := notifier.Notify(u.ID, models.NotificationTypeHearing, "Hearing Tomorrow", message, models.PriorityHigh); err != nil {
				zap.L().Error("failed to create hearing reminder", zap.Uint("hearing_id", h.ID), zap.Error(err))
				continue
			}
			if mailer != nil {
				email := services.NewPlainEmail(u.Email, "Hearing Tomorrow: "+h.Case.CaseNumber, message)
				if err := mailer.Send(ctx, email); err != nil {
					zap.L().Warn("failed to email hearing reminder",
						zap.Uint("hearing_id", h.ID),
						zap.Uint("user_id", u.ID),
						zap.Error(err),
					)
				}
			}
		}

		if err := database.WithContext(ctx).Model(h).Update("reminder_sent_at", now).Error; err != nil {
			return sent, fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		sent++
	}

	zap.L().Info("hearing reminders sent", zap.Int("hearings", sent))
	return sent, nil
}

// RunHearingReminders sends reminders immediately and then every interval
// until ctx is cancelled
func RunHearingReminders(ctx context.Context, database *gorm.DB, mailer services.Mailer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := SendHearingReminders(ctx, database, mailer, time.Now().UTC()); err != nil {
			zap.L().Error("hearing reminder job failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
