package handlers

import (
	"errors"
	"net/http"
	"strings"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/mailer"
	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errorStatus maps an error class to its HTTP status and the message shown
// to the caller.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, trimClass(err, models.ErrValidation)
	case errors.Is(err, auth.ErrInvalidOTP):
		return http.StatusBadRequest, auth.ErrInvalidOTP.Error()
	case errors.Is(err, auth.ErrTooManyAttempts):
		return http.StatusTooManyRequests, auth.ErrTooManyAttempts.Error()
	case errors.Is(err, auth.ErrDelivery):
		return http.StatusInternalServerError, auth.ErrDelivery.Error()
	case errors.Is(err, models.ErrNotConfigured):
		return http.StatusInternalServerError, trimClass(err, models.ErrNotConfigured)
	case errors.Is(err, models.ErrUpstream):
		return http.StatusBadGateway, trimClass(err, models.ErrUpstream)
	case errors.Is(err, models.ErrParse):
		return http.StatusInternalServerError, trimClass(err, models.ErrParse)
	case errors.Is(err, mailer.ErrPartialDelivery):
		return http.StatusInternalServerError, trimClass(err, mailer.ErrPartialDelivery)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func trimClass(err, class error) string {
	return strings.Replace(err.Error(), class.Error()+": ", "", 1)
}

func respondError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", status).Str("path", c.FullPath()).Msg("Request failed")
	c.JSON(status, models.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Error: message}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
