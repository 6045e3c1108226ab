package notify

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

// LogNotifier writes messages to the log instead of sending them. It is the
// development sink used when no SMTP relay is configured, so codes show up
// in the service output.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	l := n.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Info("mail not sent (no smtp relay configured)",
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}
