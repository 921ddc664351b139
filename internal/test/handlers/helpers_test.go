package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// authedRouter returns a router behind the session middleware and a bearer
// token for a fresh session.
func authedRouter(t *testing.T) (*gin.Engine, *auth.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessionManager(testSecret, time.Hour)
	session, err := sessions.Issue("reviewer@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.AuthMiddleware(sessions))
	return router, session
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
