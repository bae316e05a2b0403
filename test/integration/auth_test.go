package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, client *http.Client, url string, payload map[string]any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

// TestAuthFlow covers the full lifecycle: Signup -> Login -> /auth/me.
func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Step 1: Signup
	resp := postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "a@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupBody struct {
		Message string `json:"message"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signupBody))
	resp.Body.Close()
	assert.Equal(t, "User created successfully", signupBody.Message)
	assert.Equal(t, "a@x.com", signupBody.User.Email)
	assert.NotEmpty(t, signupBody.User.ID)

	// Step 2: Login
	resp = postJSON(t, app.Client, app.Server.URL+"/auth/login", map[string]any{
		"email":    "a@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginBody struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginBody))
	resp.Body.Close()
	require.NotEmpty(t, loginBody.Token)
	assert.Equal(t, signupBody.User.ID, loginBody.User.ID)

	// Step 3: /auth/me with the bearer token
	req, err := http.NewRequest("GET", app.Server.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)

	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	resp.Body.Close()
	assert.Equal(t, signupBody.User.ID, me.ID)
	assert.Equal(t, "a@x.com", me.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "dup@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "dup@x.com",
		"password": "completely-different",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "short@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// TestLoginFailuresLookAlike checks that a wrong password and an unknown
// email produce the same response, so accounts cannot be enumerated.
func TestLoginFailuresLookAlike(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app.Client, app.Server.URL+"/auth/signup", map[string]any{
		"email":    "real@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	wrongPass := postJSON(t, app.Client, app.Server.URL+"/auth/login", map[string]any{
		"email":    "real@x.com",
		"password": "wrong-password",
	})
	unknown := postJSON(t, app.Client, app.Server.URL+"/auth/login", map[string]any{
		"email":    "ghost@x.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

	var bufA, bufB bytes.Buffer
	bufA.ReadFrom(wrongPass.Body)
	bufB.ReadFrom(unknown.Body)
	wrongPass.Body.Close()
	unknown.Body.Close()
	assert.Equal(t, bufA.String(), bufB.String())
}

func TestMeUnauthorized(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// No token
	resp, err := app.Client.Get(app.Server.URL + "/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage token
	req, err := http.NewRequest("GET", app.Server.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer garbage")

	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
