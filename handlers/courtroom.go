package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListCourtrooms(c echo.Context) error {
	rooms, err := services.ListCourtrooms(h.db(c), c.QueryParam("status"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.CourtroomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, rooms[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCourtroom(c echo.Context) error {
	id, err := parseID(c, "id", "Courtroom not found")
	if err != nil {
		return err
	}

	room, err := services.GetCourtroom(h.db(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room.ToResponse())
}

// UpdateCourtroom changes the live state of a courtroom (court only)
func (h *Handler) UpdateCourtroom(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Courtroom not found")
	if err != nil {
		return err
	}

	var input services.CourtroomUpdate
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	room, err := services.UpdateCourtroom(h.db(c), user, id, input)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Courtroom updated",
		"courtroom": room.ToResponse(),
	})
}
