package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used in development and as the fallback when no SMTP host is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("notifier", "log").Logger(),
	}
}

// Notify logs the notification and always succeeds.
func (n *LogNotifier) Notify(ctx context.Context, recipient, template string, data map[string]string) error {
	n.logger.Info().
		Str("recipient", recipient).
		Str("template", template).
		Fields(map[string]any{"data": data}).
		Msg("notification")
	return nil
}
