package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== AUTH HANDLER HTTP TESTS ====================

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/register", gin.H{
			"name":     "Alice",
			"email":    "a@b.com",
			"password": "secret123",
		}, "")

		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		assert.False(t, env.Error)
		assert.Equal(t, "Registration Successfull.", env.Message)
		assert.NotEmpty(t, env.Data["accessToken"])
		assert.NotEmpty(t, env.Data["expiresAt"])

		user := env.Data["user"].(map[string]interface{})
		assert.Equal(t, "a@b.com", user["email"])

		// The password hash never leaves the server
		_, present := user["password"]
		assert.False(t, present)
		assert.NotContains(t, w.Body.String(), "secret123")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/register", gin.H{
			"name":     "Alice Again",
			"email":    "a@b.com",
			"password": "secret123",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, env.Error)
	})

	t.Run("missing password", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/register", gin.H{
			"name":  "No Password",
			"email": "np@b.com",
		}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, env.Error)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	registerToken := s.register(t, "Alice", "a@b.com", "secret123")

	t.Run("success issues a distinct token", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/login", gin.H{
			"email":    "a@b.com",
			"password": "secret123",
		}, "")

		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		assert.False(t, env.Error)
		assert.Equal(t, "Login Successfull.", env.Message)

		loginToken := env.Data["accessToken"].(string)
		assert.NotEmpty(t, loginToken)
		assert.NotEqual(t, registerToken, loginToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/login", gin.H{
			"email":    "a@b.com",
			"password": "wrongpassword",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, env.Error)
		assert.Equal(t, "Credentials do not match. Please try again.", env.Message)
	})

	t.Run("unknown email gets the same generic message", func(t *testing.T) {
		w, env := s.doJSON(t, http.MethodPost, "/api/v1/login", gin.H{
			"email":    "nobody@b.com",
			"password": "secret123",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, env.Error)
		assert.Equal(t, "Credentials do not match. Please try again.", env.Message)
	})

	t.Run("malformed email", func(t *testing.T) {
		w, _ := s.doJSON(t, http.MethodPost, "/api/v1/login", gin.H{
			"email":    "not-an-email",
			"password": "secret123",
		}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Alice", "a@b.com", "secret123")

	t.Run("with valid token", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/me", nil, "", token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, env.Error)

		user := env.Data["user"].(map[string]interface{})
		assert.Equal(t, "a@b.com", user["email"])
		assert.Equal(t, "Alice", user["name"])
	})

	t.Run("without token", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/me", nil, "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, env.Error)
	})

	t.Run("with garbage token", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/api/v1/me", nil, "", "garbage")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Alice", "a@b.com", "secret123")

	w, env := s.do(t, http.MethodPost, "/api/v1/logout", nil, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Error)

	// The revoked token no longer resolves an identity
	w, _ = s.do(t, http.MethodGet, "/api/v1/me", nil, "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
