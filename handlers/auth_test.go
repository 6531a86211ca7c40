package handlers

import (
	"net/http"
	"testing"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := setupServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		decode(t, rec, &body)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "Legal CMS API is running", body["message"])
	}
}

func TestRegister(t *testing.T) {
	s := setupServer(t)

	t.Run("Success", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
			"name":         "Adv. Priya Sharma",
			"email":        "Priya@Example.com",
			"password":     "secret123",
			"role":         "advocate",
			"barCouncilId": "BCI/DL/2015/4521",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var body struct {
			Message string              `json:"message"`
			Token   string              `json:"token"`
			User    models.UserResponse `json:"user"`
		}
		decode(t, rec, &body)
		assert.Equal(t, "User registered", body.Message)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "priya@example.com", body.User.Email)
		assert.Equal(t, models.RoleAdvocate, body.User.Role)
	})

	t.Run("DefaultsToPublic", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Ramesh Kumar", "email": "ramesh@example.com", "password": "secret123",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var user models.User
		require.NoError(t, s.db.Where("email = ?", "ramesh@example.com").First(&user).Error)
		assert.Equal(t, models.RolePublic, user.Role)
		assert.NotEqual(t, "secret123", user.Password)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Someone", "email": "ramesh@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already registered", errorMessage(t, rec))
	})

	t.Run("MissingFields", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name, email, and password are required", errorMessage(t, rec))
	})

	t.Run("InvalidRole", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Eve", "email": "eve@example.com", "password": "secret123", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	s := setupServer(t)
	s.createUser(t, "Justice R.K. Verma", "judge@example.com", models.RoleCourt)

	t.Run("Success", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "judge@example.com", "password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token string              `json:"token"`
			User  models.UserResponse `json:"user"`
		}
		decode(t, rec, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, models.RoleCourt, body.User.Role)

		profile := s.do(t, http.MethodGet, "/api/auth/profile", body.Token, nil)
		assert.Equal(t, http.StatusOK, profile.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "judge@example.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", errorMessage(t, rec))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ghost@example.com", "password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", errorMessage(t, rec))
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", stringsReader("{not json"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", errorMessage(t, rec))
	})
}

func TestLogout(t *testing.T) {
	s := setupServer(t)
	_, token := s.createUser(t, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)

	rec := s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", errorMessage(t, rec))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodGet, "/api/cases", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is missing", errorMessage(t, rec))
}

func TestUpdateProfile(t *testing.T) {
	s := setupServer(t)
	_, advocateToken := s.createUser(t, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	_, publicToken := s.createUser(t, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)

	t.Run("AdvocateFields", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/auth/profile", advocateToken, map[string]string{
			"name":           "Adv. Priya S.",
			"specialization": "Criminal Law",
			"experience":     "9 years",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Message string              `json:"message"`
			User    models.UserResponse `json:"user"`
		}
		decode(t, rec, &body)
		assert.Equal(t, "Profile updated", body.Message)
		assert.Equal(t, "Adv. Priya S.", body.User.Name)
	})

	t.Run("PublicIgnoresAdvocateFields", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/auth/profile", publicToken, map[string]string{
			"specialization": "Criminal Law",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var user models.User
		require.NoError(t, s.db.Where("email = ?", "ramesh@example.com").First(&user).Error)
		assert.Nil(t, user.Specialization)
	})
}

func TestChangePassword(t *testing.T) {
	s := setupServer(t)
	_, token := s.createUser(t, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)

	t.Run("WrongCurrent", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/auth/change-password", token, map[string]string{
			"currentPassword": "wrong", "newPassword": "newsecret1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Current password is incorrect", errorMessage(t, rec))
	})

	t.Run("Missing", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/auth/change-password", token, map[string]string{
			"currentPassword": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/auth/change-password", token, map[string]string{
			"currentPassword": "password123", "newPassword": "newsecret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		login := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ramesh@example.com", "password": "newsecret1",
		})
		assert.Equal(t, http.StatusOK, login.Code)
	})
}
