package authsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// DefaultCookieName is the session cookie the service sets.
const DefaultCookieName = "token"

// Client talks to a passgate service. It is safe for concurrent use, but all
// callers share one cookie jar and therefore one session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// SessionToken returns the session cookie currently held for the service, if any.
func (c *Client) SessionToken() string {
	if c.HTTPClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == DefaultCookieName {
			return ck.Value
		}
	}
	return ""
}

// Register creates an account and stores the returned session cookie.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterWithAvatar creates an account with a profile image, sent as multipart form data.
func (c *Client) RegisterWithAvatar(ctx context.Context, req RegisterRequest, filename string, avatar io.Reader) (*ProfileResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"role":     req.Role,
	} {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, avatar); err != nil {
		return nil, fmt.Errorf("failed to copy avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/register"), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password})
}

// Logout asks the service to clear the session cookie. The token itself stays
// valid until it expires.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil)
}

// SendVerifyOTP mails a verification code to the signed-in account.
func (c *Client) SendVerifyOTP(ctx context.Context) error {
	return c.post(ctx, "/api/auth/send-verify-otp", nil)
}

// VerifyAccount submits the verification code for the signed-in account.
func (c *Client) VerifyAccount(ctx context.Context, otp string) error {
	return c.post(ctx, "/api/auth/verify-account", VerifyAccountRequest{OTP: otp})
}

// IsAuthenticated reports whether the held session is accepted. A rejected
// session is not an error.
func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/is-auth", nil)
	if err != nil {
		return false, err
	}
	if err := decodeJSON(resp, nil, http.StatusOK); err != nil {
		if IsUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SendResetOTP mails a password reset code to email.
func (c *Client) SendResetOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/send-reset-otp", SendResetOTPRequest{Email: email})
}

// ResetPassword consumes a reset code and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return c.post(ctx, "/api/auth/reset-password", ResetPasswordRequest{
		Email:       email,
		OTP:         otp,
		NewPassword: newPassword,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	resp, err := c.doJSON(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
