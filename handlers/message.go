package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

type sendMessageRequest struct {
	ReceiverID uint   `json:"receiverId"`
	Content    string `json:"content"`
}

func (h *Handler) ListContacts(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	contacts, err := services.ListContacts(h.db(c), user)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// GetConversation returns the full history with one contact, oldest first,
// after marking the contact's messages to the caller as read
func (h *Handler) GetConversation(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	contactID, err := parseID(c, "userId", "User not found")
	if err != nil {
		return err
	}

	messages, err := services.OpenConversation(h.db(c), user, contactID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, messages[i].ToResponseFor(user.ID))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) SendMessage(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req sendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	msg, err := services.SendMessage(h.db(c), user, req.ReceiverID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Message sent",
		"data":    msg.ToResponseFor(user.ID),
	})
}
