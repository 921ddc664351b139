package handlers

import (
	"context"
	"net/http"

	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Approvals persists per-session approval flags.
type Approvals interface {
	SetApproval(ctx context.Context, sessionID, filename, imageData string, approved bool) (*models.ApprovalRecord, error)
	LoadApprovals(ctx context.Context, sessionID string, creatives []models.CreativeRef) ([]int, error)
}

type ApprovalsHandler struct {
	approvals Approvals
}

func NewApprovalsHandler(approvals Approvals) *ApprovalsHandler {
	return &ApprovalsHandler{approvals: approvals}
}

// SetApproval godoc
// @Summary     Approve or unapprove a creative
// @Description Records the flag for the creative's content fingerprint within the caller's session. The last write wins.
// @Tags        approvals
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ApprovalRequest true "Creative and flag"
// @Success     200 {object} models.ApprovalResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/approvals [put]
func (h *ApprovalsHandler) SetApproval(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	rec, err := h.approvals.SetApproval(c.Request.Context(), session.ID, req.Filename, req.ImageData, req.IsApproved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ApprovalResponse{CreativeHash: rec.CreativeHash, IsApproved: rec.IsApproved})
}

// QueryApprovals godoc
// @Summary     Load approval flags
// @Description Returns the indices of the given creatives that are approved in the caller's session.
// @Tags        approvals
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ApprovalQueryRequest true "Creatives"
// @Success     200 {object} models.ApprovalQueryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/approvals/query [post]
func (h *ApprovalsHandler) QueryApprovals(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.ApprovalQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	approved, err := h.approvals.LoadApprovals(c.Request.Context(), session.ID, req.Creatives)
	if err != nil {
		respondError(c, err)
		return
	}
	if approved == nil {
		approved = []int{}
	}

	c.JSON(http.StatusOK, models.ApprovalQueryResponse{Approved: approved})
}
