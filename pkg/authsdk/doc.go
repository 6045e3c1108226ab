/*
Package authsdk provides a Go client for the passgate account service.

# Overview

The service keeps a signed session token in an HTTP-only cookie. Client holds
a cookie jar, so once Register or Login succeeds every later call carries the
session automatically, the same way a browser would:

	client, err := authsdk.NewClient("http://localhost:8080")

	// Create an account (also signs in)
	_, err = client.Register(ctx, authsdk.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
		Role:     "member",
	})

	// Email verification
	err = client.SendVerifyOTP(ctx)
	err = client.VerifyAccount(ctx, code)

	// Account data
	profile, err := client.Me(ctx)

	// Password recovery does not need a session
	err = client.SendResetOTP(ctx, "alice@example.com")
	err = client.ResetPassword(ctx, "alice@example.com", code, "new password")

# Errors

Every non-2xx response is returned as *APIError carrying the status code and
the server's message. Use errors.As to inspect it, or the helpers IsStatus and
IsUnauthorized.

# Health

GetLiveness and GetReadiness call the /livez and /readyz probes.
*/
package authsdk
