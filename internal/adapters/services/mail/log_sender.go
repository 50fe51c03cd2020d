package mail

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"gitlab.com/onboardly/accounts-backend/internal/domain/valueobject/mails"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
)

// LogSender writes outgoing mail to the log instead of an SMTP relay. Used
// outside production, where nobody wants real mail going out.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = otelslog.NewLogger("accounts/adapters/services/mail")
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendMail(ctx context.Context, payload mails.Payload) error {
	s.logger.InfoContext(ctx, "outgoing mail",
		slog.String("to", logging.RedactEmail(payload.To)),
		slog.String("subject", payload.Subject),
		slog.String("body", payload.Body),
	)
	return nil
}
