package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/passgate/internal/auth/avatar"
	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/authsdk"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

// maxMultipartMemory leaves room for the text fields next to the largest
// avatar. The router caps register bodies at the same size.
const maxMultipartMemory = avatar.MaxSize + 1<<20

// AccountHandler serves registration, login and the session probes.
type AccountHandler struct {
	AccountService *service.AccountService
	Cookie         CookieConfig
}

// HandleRegister handles POST /api/auth/register
//
//	@Summary		Register an account
//	@Description	Creates an unverified account and signs it in by setting the session cookie.
//	@Description	Accepts a JSON body, or multipart/form-data with an optional "avatar" image file.
//	@Tags			Account
//	@Accept			json
//	@Accept			mpfd
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"name, email, password, role"
//	@Param			avatar	formData	file					false	"Profile image (JPEG, PNG, GIF or WebP, max 5 MiB)"
//	@Success		201		{object}	authsdk.ProfileResponse	"Account created"
//	@Failure		400		{object}	authsdk.Response		"Missing or invalid fields"
//	@Failure		409		{object}	authsdk.Response		"Email already registered"
//	@Failure		429		{object}	authsdk.Response		"Too many requests"
//	@Failure		500		{object}	authsdk.Response		"Internal server error"
//	@Router			/api/auth/register [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in service.RegisterInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in = service.RegisterInput{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}

		file, hdr, err := r.FormFile("avatar")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
			return
		default:
			defer file.Close()
			in.Avatar = &service.AvatarUpload{
				ContentType: hdr.Header.Get("Content-Type"),
				Body:        file,
				Size:        hdr.Size,
			}
		}
	} else {
		var req authsdk.RegisterRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in = service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		}
	}

	res, err := h.AccountService.Register(ctx, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if res.NotifyErr != nil {
		log.Warn("welcome mail not sent", "account_id", res.Account.ID, "err", res.NotifyErr)
	}

	h.Cookie.setSession(w, res.Session.Token)
	httpx.WriteSuccess(w, http.StatusCreated, res.Account.Name+" is registered successfully", map[string]any{
		"user": res.Account.Profile(),
	})
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Log in
//	@Description	Checks the credentials and sets the session cookie.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.Response		"Logged in"
//	@Failure		400		{object}	authsdk.Response		"Missing fields or invalid credentials"
//	@Failure		429		{object}	authsdk.Response		"Too many requests"
//	@Failure		500		{object}	authsdk.Response		"Internal server error"
//	@Router			/api/auth/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sess, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookie.setSession(w, sess.Token)
	httpx.WriteSuccess(w, http.StatusOK, "Logged in successfully", nil)
}

// HandleLogout handles POST /api/auth/logout
//
//	@Summary		Log out
//	@Description	Clears the session cookie. The token itself is not revoked and stays valid until it expires.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	authsdk.Response	"Logged out"
//	@Router			/api/auth/logout [post].
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.clearSession(w)
	httpx.WriteSuccess(w, http.StatusOK, "Logged out", nil)
}

// HandleIsAuth handles GET /api/auth/is-auth
//
//	@Summary		Session probe
//	@Description	Answers 200 when the session cookie or bearer token is valid.
//	@Tags			Account
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.Response	"Authenticated"
//	@Failure		401	{object}	authsdk.Response	"Not authorized"
//	@Router			/api/auth/is-auth [get].
func (h *AccountHandler) HandleIsAuth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteSuccess(w, http.StatusOK, "User is authenticated", nil)
}

// HandleMe handles GET /api/auth/me
//
//	@Summary		Current account
//	@Description	Returns the signed-in account without any password or OTP material.
//	@Tags			Account
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse	"Account data"
//	@Failure		401	{object}	authsdk.Response		"Not authorized"
//	@Failure		404	{object}	authsdk.Response		"Account no longer exists"
//	@Failure		500	{object}	authsdk.Response		"Internal server error"
//	@Router			/api/auth/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgNotAuthorized)
		return
	}

	acct, err := h.AccountService.Me(ctx, accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User data fetched", map[string]any{
		"user": acct.Profile(),
	})
}
