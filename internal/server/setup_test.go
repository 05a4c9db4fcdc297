package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testTokenSecret  = "test-token-secret"
	testSignupSecret = "test-signup-key"
)

// newTestApp builds a server over an in-memory SQLite database with no Redis.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	_, app := newTestServer(t)
	return app
}

// newTestServer exposes the server alongside the app for tests that reach
// into its dependencies.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A fresh connection would see a fresh in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:         "0",
		TokenSecret:  testTokenSecret,
		SignupSecret: testSignupSecret,
		Env:          "test",
	}

	srv := New(cfg, db, nil)
	return srv, srv.NewApp()
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return res.StatusCode, decoded
}

// signupAndLogin registers an admin and returns its bearer token.
func signupAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/admins/signup", map[string]any{
		"fullName":  "Test Admin",
		"username":  username,
		"password":  "password123",
		"signUpKey": testSignupSecret,
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/admins/login", map[string]any{
		"username": username,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, status)

	token, ok := body["token"].(string)
	require.True(t, ok, "login response should carry a token")
	return token
}

// createPost creates a post through the API and returns its id.
func createPost(t *testing.T, app *fiber.App, token, title string, publish bool) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/posts", map[string]any{
		"title":         title,
		"content":       "Some content for " + title,
		"publishStatus": publish,
	}, token)
	require.Equal(t, http.StatusOK, status)

	post, ok := body["post"].(map[string]any)
	require.True(t, ok, "create response should carry a post")
	return uint(post["id"].(float64))
}
