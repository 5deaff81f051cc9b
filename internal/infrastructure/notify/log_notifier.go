// Package notify holds reset-token delivery adapters. Real email delivery is
// an external collaborator; the log adapter stands in for it.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier records that a reset token was issued without delivering it.
// The token itself is never logged.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendResetToken(ctx context.Context, email, token string) error {
	n.log.Info().Str("email", email).Msg("password reset token issued")
	return nil
}
