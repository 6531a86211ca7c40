package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessaging(t *testing.T) {
	s := setupServer(t)
	client, clientToken := s.createUser(t, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)
	advocate, advocateToken := s.createUser(t, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	s.createUser(t, "Justice R.K. Verma", "judge@example.com", models.RoleCourt)

	t.Run("ContactsWithoutHistory", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/messages/contacts", clientToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var contacts []services.Contact
		decode(t, rec, &contacts)
		require.Len(t, contacts, 2)
		for _, contact := range contacts {
			assert.Zero(t, contact.Unread, contact.Name)
			assert.Empty(t, contact.LastMsg, contact.Name)
		}
	})

	rec := s.do(t, http.MethodPost, "/api/messages", clientToken, map[string]interface{}{
		"receiverId": advocate.ID, "content": "Any update on my case?",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sent struct {
		Message string                 `json:"message"`
		Data    models.MessageResponse `json:"data"`
	}
	decode(t, rec, &sent)
	assert.Equal(t, "Message sent", sent.Message)
	assert.Equal(t, "me", sent.Data.From)

	t.Run("Rejections", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/messages", clientToken, map[string]interface{}{
			"receiverId": client.ID, "content": "hi",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodPost, "/api/messages", clientToken, map[string]interface{}{
			"receiverId": 9999, "content": "hi",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Receiver not found", errorMessage(t, rec))

		rec = s.do(t, http.MethodPost, "/api/messages", clientToken, map[string]interface{}{"receiverId": advocate.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnreadInContacts", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/messages/contacts", advocateToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var contacts []services.Contact
		decode(t, rec, &contacts)
		require.Len(t, contacts, 1)
		assert.Equal(t, client.ID, contacts[0].ID)
		assert.Equal(t, "Public", contacts[0].Role)
		assert.Equal(t, int64(1), contacts[0].Unread)
		assert.Equal(t, "Any update on my case?", contacts[0].LastMsg)
	})

	t.Run("ConversationMarksRead", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/messages/%d", client.ID), advocateToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var messages []models.MessageResponse
		decode(t, rec, &messages)
		require.Len(t, messages, 1)
		assert.Equal(t, "them", messages[0].From)

		rec = s.do(t, http.MethodGet, "/api/messages/contacts", advocateToken, nil)
		var contacts []services.Contact
		decode(t, rec, &contacts)
		require.Len(t, contacts, 1)
		assert.Equal(t, int64(0), contacts[0].Unread)
	})

	t.Run("UnknownContact", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/messages/9999", advocateToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
