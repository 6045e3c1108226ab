// Package notify delivers account mail: welcome messages and one-time codes.
package notify

import "context"

// Notifier sends a single HTML message. Failures are returned unchanged;
// there are no retries.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
