package handlers

import (
	"context"
	"net/http"

	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Scorer runs one scoring batch.
type Scorer interface {
	Score(ctx context.Context, bip string, creatives []models.CreativeInput) (*models.ResultsData, error)
}

type ProcessHandler struct {
	scorer Scorer
}

func NewProcessHandler(scorer Scorer) *ProcessHandler {
	return &ProcessHandler{scorer: scorer}
}

// Score godoc
// @Summary     Score creatives against a brand profile
// @Description Sends the BIP and every creative to the configured vision model in one request and returns the normalized scorecards.
// @Description Results are ordered like the submitted creatives. csv_data is included when two or more creatives are scored.
// @Tags        score
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ScoreRequest true "BIP and creatives"
// @Success     200 {object} models.ResultsData
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/v1/score [post]
func (h *ProcessHandler) Score(c *gin.Context) {
	var req models.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	result, err := h.scorer.Score(c.Request.Context(), req.BIP, req.Creatives)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
