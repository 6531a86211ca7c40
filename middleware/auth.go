package middleware

import (
	"errors"
	"net/http"
	"strings"

	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyClaims is the context key for the verified token claims
	ContextKeyClaims = "token_claims"
)

var tracer = otel.Tracer("legal_cms_go/middleware")

// RequireAuth resolves the bearer token to a user and stores both in the
// echo context. Any failure is a 401.
func RequireAuth(tokens *services.TokenService, database *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.RequireAuth")
			defer span.End()

			claims, err := tokens.Verify(ctx, bearerToken(c.Request()))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "token rejected")
				return unauthorized(err)
			}

			user, err := services.GetUserByID(database.WithContext(ctx), claims.UserID)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "user lookup failed")
				if errors.Is(err, services.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}

			span.SetAttributes(
				attribute.Int64("user.id", int64(user.ID)),
				attribute.String("user.role", user.Role),
			)

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyClaims, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetTokenClaims retrieves the verified token claims from context
func GetTokenClaims(c echo.Context) *services.TokenClaims {
	claims, ok := c.Get(ContextKeyClaims).(*services.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) && errors.Is(err, services.ErrUnauthorized) {
		return echo.NewHTTPError(http.StatusUnauthorized, svcErr.Message)
	}
	return err
}
