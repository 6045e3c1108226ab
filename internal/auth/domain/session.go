package domain

import "time"

// Session is a signed bearer token bound to one account id.
type Session struct {
	AccountID string
	Token     string
	ExpiresAt time.Time
}
