package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

const (
	msgInvalidBody     = "Invalid request body"
	msgInternalError   = "Internal Server Error"
	msgMissingFields   = "Please fill all the fields"
	msgInvalidEmail    = "Invalid email address"
	msgInvalidAvatar   = "Avatar must be a JPEG, PNG, GIF or WebP image up to 5 MiB"
	msgUserNotFound    = "User not found"
	msgEmailTaken      = "Email already registered"
	msgInvalidLogin    = "Invalid email or password"
	msgAlreadyVerified = "Account already verified"
	msgNoOTPPending    = "No OTP pending. Request a new one"
	msgOTPExpired      = "OTP expired"
	msgInvalidOTP      = "Invalid OTP"
)

// writeServiceError maps a service error to its status and message. Anything
// unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := http.StatusInternalServerError, msgInternalError

	switch {
	case errors.Is(err, service.ErrMissingField):
		code, msg = http.StatusBadRequest, msgMissingFields
	case errors.Is(err, service.ErrInvalidEmail):
		code, msg = http.StatusBadRequest, msgInvalidEmail
	case errors.Is(err, service.ErrInvalidAvatar):
		code, msg = http.StatusBadRequest, msgInvalidAvatar
	case errors.Is(err, service.ErrAccountNotFound):
		code, msg = http.StatusNotFound, msgUserNotFound
	case errors.Is(err, service.ErrEmailTaken):
		code, msg = http.StatusConflict, msgEmailTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		code, msg = http.StatusBadRequest, msgInvalidLogin
	case errors.Is(err, service.ErrAlreadyVerified):
		code, msg = http.StatusBadRequest, msgAlreadyVerified
	case errors.Is(err, service.ErrNoOTPPending):
		code, msg = http.StatusBadRequest, msgNoOTPPending
	case errors.Is(err, service.ErrOTPExpired):
		code, msg = http.StatusBadRequest, msgOTPExpired
	case errors.Is(err, service.ErrInvalidOTP):
		code, msg = http.StatusBadRequest, msgInvalidOTP
	case errors.Is(err, service.ErrInvalidSession):
		code, msg = http.StatusUnauthorized, httpx.MsgNotAuthorized
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
	}

	httpx.WriteError(w, code, msg)
}
