package logging_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"creative-evaluator-backend/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "ja***@example.com", logging.RedactEmail("jane@example.com"))
	assert.Equal(t, "***@example.com", logging.RedactEmail("jo@example.com"))
	assert.Equal(t, "***@***", logging.RedactEmail("not-an-email"))
}

func TestInitLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logging.Init("debug", true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logging.Init("WARN", false)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logging.Init("bogus", true)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(logging.RequestLogger())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
