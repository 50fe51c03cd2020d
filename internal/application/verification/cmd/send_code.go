package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/domain/event"
	"gitlab.com/onboardly/accounts-backend/internal/domain/verification"
	"gitlab.com/onboardly/accounts-backend/pkg/env"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
)

var (
	tracer = otel.Tracer("accounts/application/verification/cmd")
	logger = otelslog.NewLogger("accounts/application/verification/cmd")
)

type SendCode struct {
	Email string
}

type SendCodeHandler struct {
	tracer    trace.Tracer
	logger    *slog.Logger
	mode      env.Mode
	cache     Cache
	publisher Publisher
}

type SendCodeHandlerArgs struct {
	Tracer    trace.Tracer
	Logger    *slog.Logger
	Mode      env.Mode
	Cache     Cache
	Publisher Publisher
}

func NewSendCodeHandler(args SendCodeHandlerArgs) *SendCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &SendCodeHandler{
		tracer:    args.Tracer,
		logger:    args.Logger,
		mode:      args.Mode,
		cache:     args.Cache,
		publisher: args.Publisher,
	}
}

// Handle issues a fresh verification code for the address. The code is
// cached before the mail event goes out, so a fast-fingered user can never
// receive a code the service does not know about. Requesting again simply
// overwrites the previous code.
func (h *SendCodeHandler) Handle(ctx context.Context, cmd SendCode) error {
	const op = "SendCodeHandler.Handle"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("verification.email", logging.RedactEmail(cmd.Email)))

	code, err := verification.NewCode(cmd.Email, h.mode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to issue verification code")
		return errorx.NewInvalidRequest().WithCause(err, op)
	}

	h.cache.Set(code.Email(), code.Value(), verification.TTL)
	span.AddEvent("verification code cached")

	evt := &verification.CodeRequested{
		Header: event.NewEventHeader(),
		Email:  code.Email(),
		Code:   code.Value(),
	}
	evt.Propagate(ctx)

	if err := h.publisher.Publish(ctx, evt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to publish code requested event")
		return errorx.NewUpstreamError().WithCause(err, op)
	}

	h.logger.InfoContext(ctx, "verification code issued",
		slog.String("email", logging.RedactEmail(code.Email())),
	)
	return nil
}
