package http

import (
	"net/http"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/authsdk"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
)

// VerificationHandler serves the email verification flow for the signed-in account.
type VerificationHandler struct {
	VerificationService *service.VerificationService
}

// HandleSendOTP handles POST /api/auth/send-verify-otp
//
//	@Summary		Send verification code
//	@Description	Mails a fresh 6 digit code to the signed-in account. Any earlier code stops working.
//	@Tags			Verification
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.Response	"Code sent"
//	@Failure		400	{object}	authsdk.Response	"Account already verified"
//	@Failure		401	{object}	authsdk.Response	"Not authorized"
//	@Failure		404	{object}	authsdk.Response	"User not found"
//	@Failure		429	{object}	authsdk.Response	"Too many requests"
//	@Failure		500	{object}	authsdk.Response	"Mail could not be sent"
//	@Router			/api/auth/send-verify-otp [post].
func (h *VerificationHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgNotAuthorized)
		return
	}

	if err := h.VerificationService.IssueOTP(ctx, accountID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Verification OTP sent successfully", nil)
}

// HandleVerify handles POST /api/auth/verify-account
//
//	@Summary		Verify account
//	@Description	Consumes the pending verification code and marks the account verified.
//	@Tags			Verification
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyAccountRequest	true	"otp"
//	@Success		200		{object}	authsdk.Response				"Email verified"
//	@Failure		400		{object}	authsdk.Response				"Missing, invalid or expired code, or already verified"
//	@Failure		401		{object}	authsdk.Response				"Not authorized"
//	@Failure		404		{object}	authsdk.Response				"User not found"
//	@Failure		429		{object}	authsdk.Response				"Too many requests"
//	@Router			/api/auth/verify-account [post].
func (h *VerificationHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgNotAuthorized)
		return
	}

	var req authsdk.VerifyAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.VerificationService.Verify(ctx, accountID, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Email verified successfully", nil)
}
