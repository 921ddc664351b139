package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/handlers"
	"creative-evaluator-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeOTP struct {
	sendErr   error
	verifyErr error
	sentTo    string
}

func (f *fakeOTP) SendCode(_ context.Context, email string) error {
	f.sentTo = email
	return f.sendErr
}

func (f *fakeOTP) Verify(_ context.Context, email, code string) (*auth.Session, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &auth.Session{ID: "sid-1", Email: email, Token: "tok-" + code, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func otpRouter(svc handlers.OTPService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/otp", handlers.NewAuthHandler(svc).OTP)
	return router
}

func TestOTP_Send(t *testing.T) {
	svc := &fakeOTP{}
	w := doJSON(t, otpRouter(svc), http.MethodPost, "/api/v1/auth/otp", "", models.OTPRequest{Email: "a@example.com", Action: "send"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.OTPResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Equal(t, "a@example.com", svc.sentTo)
}

func TestOTP_Verify(t *testing.T) {
	w := doJSON(t, otpRouter(&fakeOTP{}), http.MethodPost, "/api/v1/auth/otp", "", models.OTPRequest{Email: "a@example.com", Action: "verify", OTP: "123456"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.OTPResponse](t, w)
	assert.Equal(t, "tok-123456", resp.Token)
	assert.Equal(t, "sid-1", resp.SessionID)
	if assert.NotNil(t, resp.ExpiresAt) {
		assert.Equal(t, 2030, resp.ExpiresAt.Year())
	}
}

func TestOTP_InvalidAction(t *testing.T) {
	w := doJSON(t, otpRouter(&fakeOTP{}), http.MethodPost, "/api/v1/auth/otp", "", models.OTPRequest{Email: "a@example.com", Action: "reset"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action", decode[models.ErrorResponse](t, w).Error)
}

func TestOTP_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		svc     *fakeOTP
		action  string
		status  int
		message string
	}{
		{"invalid code", &fakeOTP{verifyErr: auth.ErrInvalidOTP}, "verify", http.StatusBadRequest, "Invalid or expired OTP"},
		{"too many", &fakeOTP{verifyErr: auth.ErrTooManyAttempts}, "verify", http.StatusTooManyRequests, auth.ErrTooManyAttempts.Error()},
		{"missing email", &fakeOTP{sendErr: fmt.Errorf("%w: Email is required", models.ErrValidation)}, "send", http.StatusBadRequest, "Email is required"},
		{"delivery", &fakeOTP{sendErr: fmt.Errorf("%w: %v", auth.ErrDelivery, "Status 401: bad key")}, "send", http.StatusInternalServerError, "Failed to send email"},
		{"not configured", &fakeOTP{sendErr: fmt.Errorf("%w: SendGrid API key not configured", models.ErrNotConfigured)}, "send", http.StatusInternalServerError, "SendGrid API key not configured"},
		{"unexpected", &fakeOTP{sendErr: fmt.Errorf("db is down")}, "send", http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, otpRouter(tc.svc), http.MethodPost, "/api/v1/auth/otp", "", models.OTPRequest{Email: "a@example.com", Action: tc.action, OTP: "1"})
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decode[models.ErrorResponse](t, w).Error)
		})
	}
}
