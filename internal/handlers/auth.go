package handlers

import (
	"context"
	"net/http"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// OTPService is the sign-in flow the auth handler drives.
type OTPService interface {
	SendCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (*auth.Session, error)
}

type AuthHandler struct {
	otp OTPService
}

func NewAuthHandler(otp OTPService) *AuthHandler {
	return &AuthHandler{otp: otp}
}

// OTP godoc
// @Summary     Send or verify a one-time passcode
// @Description action=send emails a 6-digit code valid for 10 minutes.
// @Description action=verify exchanges the code for a session token used as a Bearer token on every other endpoint.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.OTPRequest true "Email, action and code"
// @Success     200 {object} models.OTPResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/auth/otp [post]
func (h *AuthHandler) OTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	switch req.Action {
	case "send":
		if err := h.otp.SendCode(c.Request.Context(), req.Email); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.OTPResponse{Success: true, Message: "OTP sent successfully"})

	case "verify":
		session, err := h.otp.Verify(c.Request.Context(), req.Email, req.OTP)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.OTPResponse{
			Success:   true,
			Message:   "OTP verified successfully",
			Token:     session.Token,
			SessionID: session.ID,
			ExpiresAt: &session.ExpiresAt,
		})

	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid action"})
	}
}
