package services

import (
	"context"
	"errors"
	"testing"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []*Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email *Email) error {
	m.sent = append(m.sent, email)
	return m.err
}

func (m *fakeMailer) Name() string { return "fake" }

func TestNotificationService(t *testing.T) {
	db := setupTestDB(t)
	user := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	other := mustUser(t, db, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)
	svc := NewNotificationService(db)

	first, err := svc.Notify(user.ID, "", "Welcome", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationTypeSystem, first.Type)
	assert.Equal(t, models.PriorityLow, first.Priority)
	assert.Nil(t, first.Message)
	assert.False(t, first.IsRead)

	second, err := svc.Notify(user.ID, models.NotificationTypeUpdate, "Case Updated", "CS/2025/0001 moved to in_progress", models.PriorityMedium)
	require.NoError(t, err)
	_, err = svc.Notify(other.ID, models.NotificationTypeDocument, "Document Uploaded", "", "")
	require.NoError(t, err)

	t.Run("TitleRequired", func(t *testing.T) {
		_, err := svc.Notify(user.ID, "", "  ", "", "")
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		list, err := svc.List(user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("MarkAsRead", func(t *testing.T) {
		_, err := svc.MarkAsRead(first.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		n, err := svc.MarkAsRead(first.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, n.IsRead)

		count, err := svc.UnreadCount(user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("MarkAllAsRead", func(t *testing.T) {
		updated, err := svc.MarkAllAsRead(user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated)

		count, err := svc.UnreadCount(other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(second.ID, other.ID), ErrNotFound)
		require.NoError(t, svc.Delete(second.ID, user.ID))
		assert.ErrorIs(t, svc.Delete(second.ID, user.ID), ErrNotFound)
	})
}

func TestSendEmailNotification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mailer  Mailer
		to      string
		wantErr string
		kind    error
	}{
		{"missing fields", &fakeMailer{}, "", "to, subject, and body are required", ErrBadRequest},
		{"bad address", &fakeMailer{}, "not-an-address", "Invalid recipient address", ErrBadRequest},
		{"not configured", nil, "client@example.com", "Mail service not configured", ErrUnavailable},
		{"transport failure", &fakeMailer{err: errors.New("timeout")}, "client@example.com", "Failed to send email: timeout", ErrInternal},
		{"sent", &fakeMailer{}, "client@example.com", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SendEmailNotification(ctx, tt.mailer, tt.to, "Hearing update", "Moved to Monday")
			if tt.kind == nil {
				require.NoError(t, err)
				sent := tt.mailer.(*fakeMailer).sent
				require.Len(t, sent, 1)
				assert.Equal(t, "Hearing update", sent[0].Subject)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}
