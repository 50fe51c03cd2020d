package mailevent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/domain/valueobject/mails"
	"gitlab.com/onboardly/accounts-backend/internal/domain/verification"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
	"gitlab.com/onboardly/accounts-backend/pkg/otelx"
)

const CodeRequestedSubject = "Email Verification Code"

func (h *MailEventHandler) HandleCodeRequested(ctx context.Context, e *verification.CodeRequested) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleCodeRequested"

	l := h.logger.With(
		slog.String("event", "CodeRequested"),
		slog.String("event.email", logging.RedactEmail(e.Email)),
	)
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleCodeRequested",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	err := validation.ValidateStruct(e,
		validation.Field(&e.Email, validation.Required, is.EmailFormat),
		validation.Field(&e.Code, validation.Required),
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		l.ErrorContext(ctx, "validation failed", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: CodeRequestedSubject,
		Body:    fmt.Sprintf("Your email verification code is: %s", e.Code),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send email verification code")
		l.ErrorContext(ctx, "failed to send email verification code", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}
