package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"creative-evaluator-backend/internal/handlers"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/services"
	"creative-evaluator-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvalsRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	router, session := authedRouter(t)
	h := handlers.NewApprovalsHandler(services.NewApprovalService(st))
	router.PUT("/api/v1/approvals", h.SetApproval)
	router.POST("/api/v1/approvals/query", h.QueryApprovals)
	return router, session.Token
}

func TestApprovals_SetAndQuery(t *testing.T) {
	router, token := approvalsRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/approvals", token,
		models.ApprovalRequest{Filename: "b.png", ImageData: "data:b", IsApproved: true})
	require.Equal(t, http.StatusOK, w.Code)
	set := decode[models.ApprovalResponse](t, w)
	assert.True(t, set.IsApproved)
	assert.Equal(t, services.Fingerprint("b.png", "data:b"), set.CreativeHash)

	query := models.ApprovalQueryRequest{Creatives: []models.CreativeRef{
		{Filename: "a.png", ImageData: "data:a"},
		{Filename: "b.png", ImageData: "data:b"},
	}}
	w = doJSON(t, router, http.MethodPost, "/api/v1/approvals/query", token, query)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1}, decode[models.ApprovalQueryResponse](t, w).Approved)
}

func TestApprovals_EmptyQueryReturnsArray(t *testing.T) {
	router, token := approvalsRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/approvals/query", token, models.ApprovalQueryRequest{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"approved":[]}`, w.Body.String())
}

func TestApprovals_MissingFields(t *testing.T) {
	router, token := approvalsRouter(t)
	w := doJSON(t, router, http.MethodPut, "/api/v1/approvals", token, map[string]any{"filename": "a.png"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApprovals_NoSessionInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/api/v1/approvals", handlers.NewApprovalsHandler(nil).SetApproval)

	w := doJSON(t, router, http.MethodPut, "/api/v1/approvals", "", models.ApprovalRequest{Filename: "a", ImageData: "b"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session not found", decode[models.ErrorResponse](t, w).Error)
}
