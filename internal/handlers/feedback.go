package handlers

import (
	"context"
	"errors"
	"net/http"

	"creative-evaluator-backend/internal/mailer"
	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// FeedbackSender delivers feedback reports.
type FeedbackSender interface {
	SendFeedback(ctx context.Context, items []mailer.FeedbackItem, emails []string) (*mailer.BulkResult, error)
}

type FeedbackHandler struct {
	sender FeedbackSender
}

func NewFeedbackHandler(sender FeedbackSender) *FeedbackHandler {
	return &FeedbackHandler{sender: sender}
}

// SendFeedback godoc
// @Summary     Email a creative's feedback report
// @Description Renders the scorecard as an HTML report and sends one email per recipient.
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.FeedbackRequest true "Scorecard, image, comments and recipients"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/feedback [post]
func (h *FeedbackHandler) SendFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	var items []mailer.FeedbackItem
	if req.Creative != nil {
		items = append(items, mailer.FeedbackItem{
			Result:   *req.Creative,
			Image:    req.CreativeImage,
			Comments: req.AdditionalComments,
		})
	}

	if _, err := h.sender.SendFeedback(c.Request.Context(), items, req.Emails); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Email sent successfully"})
}

// SendBulkFeedback godoc
// @Summary     Email feedback reports for several creatives
// @Description Sends every item's report to every recipient in parallel. Emails already delivered are not recalled when others fail;
// @Description the response then carries the failure details with a 500 status.
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkFeedbackRequest true "Items and recipients"
// @Success     200 {object} models.BulkFeedbackResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.BulkFeedbackResponse
// @Router      /api/v1/feedback/bulk [post]
func (h *FeedbackHandler) SendBulkFeedback(c *gin.Context) {
	var req models.BulkFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	items := make([]mailer.FeedbackItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = mailer.FeedbackItem{
			Result:   item.Creative,
			Image:    item.CreativeImage,
			Comments: item.AdditionalComments,
		}
	}

	result, err := h.sender.SendFeedback(c.Request.Context(), items, req.Emails)
	if err != nil && !(errors.Is(err, mailer.ErrPartialDelivery) && result != nil) {
		respondError(c, err)
		return
	}

	resp := models.BulkFeedbackResponse{
		Success:   err == nil,
		Attempted: result.Attempted,
		Delivered: result.Delivered,
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, f.Filename+" -> "+f.Recipient+": "+f.Detail)
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}
