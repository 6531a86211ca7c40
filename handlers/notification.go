package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) ListNotifications(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	service := services.NewNotificationService(h.db(c))
	notifications, err := service.List(user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, notifications[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) UnreadNotificationCount(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	count, err := services.NewNotificationService(h.db(c)).UnreadCount(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Notification not found")
	if err != nil {
		return err
	}

	if _, err := services.NewNotificationService(h.db(c)).MarkAsRead(id, user.ID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	updated, err := services.NewNotificationService(h.db(c)).MarkAllAsRead(user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}

func (h *Handler) DeleteNotification(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Notification not found")
	if err != nil {
		return err
	}

	if err := services.NewNotificationService(h.db(c)).Delete(id, user.ID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification deleted"})
}

// SendEmail relays an ad-hoc email through the configured mail provider
func (h *Handler) SendEmail(c echo.Context) error {
	var req sendEmailRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := services.SendEmailNotification(c.Request().Context(), h.Mailer, req.To, req.Subject, req.Body); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Email sent successfully"})
}
