package server

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	app, _ := newTestServer(t, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Dev User",
		"email":    "dev@example.com",
		"password": "123456",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterUserValidation(t *testing.T) {
	app, _ := newTestServer(t, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs, ok := body["errors"].([]any)
	require.True(t, ok, "validation failures render as an errors array")
	assert.Len(t, errs, 3)
}

func TestRegisterUserDuplicate(t *testing.T) {
	app, _ := newTestServer(t, nil)

	registerUser(t, app, "A", "dup@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "B",
		"email":    "dup@example.com",
		"password": "123456",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User already exists", body["msg"])
}

func TestLogin(t *testing.T) {
	app, _ := newTestServer(t, nil)
	registerUser(t, app, "Dev", "login@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "login@example.com",
		"password": "123456",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", body["msg"])
}

func TestGetCurrentUser(t *testing.T) {
	app, _ := newTestServer(t, nil)
	tok := registerUser(t, app, "Dev", "me@example.com")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dev", body["name"])
	assert.Equal(t, "me@example.com", body["email"])
	_, hasPassword := body["password"]
	assert.False(t, hasPassword, "password hash never leaves the API")
}

func TestAuthRequired(t *testing.T) {
	app, _ := newTestServer(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token, authorization denied", body["msg"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token is not valid", body["msg"])
}

func TestAuthRequiredLegacyHeader(t *testing.T) {
	app, _ := newTestServer(t, nil)
	tok := registerUser(t, app, "Dev", "legacy@example.com")

	req, err := http.NewRequest(http.MethodGet, "/api/auth", nil)
	require.NoError(t, err)
	req.Header.Set("x-auth-token", tok)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app, _ := newTestServer(t, rdb)
	tok := registerUser(t, app, "Dev", "bye@example.com")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/auth", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token no longer authenticates.
	resp, body := doJSON(t, app, http.MethodGet, "/api/auth", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token is not valid", body["msg"])
}
