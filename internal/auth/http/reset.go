package http

import (
	"net/http"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/authsdk"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
)

// ResetHandler serves password recovery. Neither endpoint needs a session.
type ResetHandler struct {
	ResetService *service.ResetService
}

// HandleSendOTP handles POST /api/auth/send-reset-otp
//
//	@Summary		Send password reset code
//	@Description	Mails a fresh 6 digit reset code. Any earlier reset code stops working.
//	@Tags			Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SendResetOTPRequest	true	"email"
//	@Success		200		{object}	authsdk.Response			"Code sent"
//	@Failure		400		{object}	authsdk.Response			"Email is required"
//	@Failure		404		{object}	authsdk.Response			"User not found (unless account existence is concealed)"
//	@Failure		429		{object}	authsdk.Response			"Too many requests"
//	@Failure		500		{object}	authsdk.Response			"Mail could not be sent"
//	@Router			/api/auth/send-reset-otp [post].
func (h *ResetHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SendResetOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Password reset OTP sent successfully", nil)
}

// HandleReset handles POST /api/auth/reset-password
//
//	@Summary		Reset password
//	@Description	Consumes the reset code and replaces the password. A code works once.
//	@Tags			Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"email, otp, newPassword"
//	@Success		200		{object}	authsdk.Response				"Password reset"
//	@Failure		400		{object}	authsdk.Response				"Missing fields, invalid or expired code"
//	@Failure		404		{object}	authsdk.Response				"User not found"
//	@Failure		429		{object}	authsdk.Response				"Too many requests"
//	@Router			/api/auth/reset-password [post].
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.ResetService.ConsumeReset(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Password reset successfully", nil)
}
