package handlers

import (
	"errors"
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	Phone          *string `json:"phone"`
	CitizenID      *string `json:"citizenId"`
	BarCouncilID   *string `json:"barCouncilId"`
	Specialization *string `json:"specialization"`
	Experience     *string `json:"experience"`
	CourtName      *string `json:"courtName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Avatar         *string `json:"avatar"`
	Specialization *string `json:"specialization"`
	Experience     *string `json:"experience"`
	CourtName      *string `json:"courtName"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register creates an account and returns a token for it
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := services.Register(h.db(c), services.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Phone:          req.Phone,
		CitizenID:      req.CitizenID,
		BarCouncilID:   req.BarCouncilID,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		CourtName:      req.CourtName,
	})
	if err != nil {
		return toHTTPError(err)
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered",
		"token":   token,
		"user":    user.ToResponse(),
	})
}

// Login exchanges credentials for a token
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := services.Login(h.db(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.Logins.RecordFailure(c.RealIP())
		}
		return toHTTPError(err)
	}
	h.Logins.Reset(c.RealIP())

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return err
	}

	zap.L().Info("user logged in", zap.Uint("user_id", user.ID), zap.String("ip", c.RealIP()))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// Logout revokes the presented token until it would have expired
func (h *Handler) Logout(c echo.Context) error {
	claims := middleware.GetTokenClaims(c)
	if err := h.Tokens.Revoke(c.Request().Context(), claims); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) GetProfile(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	return c.JSON(http.StatusOK, user.ToResponse())
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req profileRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	err := services.UpdateProfile(h.db(c), user, services.ProfileUpdate{
		Name:           req.Name,
		Phone:          req.Phone,
		Avatar:         req.Avatar,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		CourtName:      req.CourtName,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    user.ToResponse(),
	})
}

func (h *Handler) ChangePassword(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := services.ChangePassword(h.db(c), user, req.CurrentPassword, req.NewPassword); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
