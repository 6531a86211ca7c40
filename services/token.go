package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of an issued bearer token
const DefaultTokenTTL = 24 * time.Hour

// TokenClaims is the verified content of a bearer token
type TokenClaims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 bearer tokens whose subject is the
// user id. Revoked token ids are rejected when a RevocationStore is set.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
}

func NewTokenService(secret string, ttl time.Duration, revoked RevocationStore) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, revoked: revoked}
}

// Issue signs a new token for userID
func (s *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and revocation and returns the claims
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, Unauthorized("Token is missing")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, Unauthorized("Token has expired")
		}
		return nil, Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, Unauthorized("Invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, Unauthorized("Invalid token")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, Unauthorized("Invalid token")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, Unauthorized("Invalid token")
	}

	jti, _ := claims["jti"].(string)

	if s.revoked != nil && jti != "" {
		revoked, err := s.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, Unauthorized("Token has been revoked")
		}
	}

	return &TokenClaims{UserID: uint(userID), TokenID: jti, ExpiresAt: exp.Time}, nil
}

// Revoke blocks the token until its natural expiry
func (s *TokenService) Revoke(ctx context.Context, claims *TokenClaims) error {
	if s.revoked == nil || claims.TokenID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
