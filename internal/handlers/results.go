package handlers

import (
	"net/http"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"

	"github.com/gin-gonic/gin"
)

// RenderComparison godoc
// @Summary     Render the comparison table
// @Description Converts the model's markdown comparison table to HTML. Raw HTML in the markdown is not rendered.
// @Description Fewer than two creatives yield an empty table.
// @Tags        results
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ComparisonRequest true "Markdown table and creative count"
// @Success     200 {object} models.ComparisonResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /api/v1/results/comparison [post]
func RenderComparison(c *gin.Context) {
	var req models.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	if req.CreativeCount < 2 || req.ComparisonTable == "" {
		c.JSON(http.StatusOK, models.ComparisonResponse{})
		return
	}

	html, err := report.RenderComparisonTable(req.ComparisonTable)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ComparisonResponse{HTML: string(html)})
}
