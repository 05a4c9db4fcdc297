package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		app := newTestApp(t)

		status, body := doJSON(t, app, http.MethodGet, "/", nil, "")
		assert.Equal(t, http.StatusOK, status)

		checks := body["checks"].(map[string]any)
		assert.Equal(t, "healthy", checks["database"])
		assert.Equal(t, "unavailable", checks["redis"])
	})

	t.Run("DegradesWhenDatabaseIsDown", func(t *testing.T) {
		srv, app := newTestServer(t)

		sqlDB, err := srv.db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	})
}
