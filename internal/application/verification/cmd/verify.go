package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/domain/verification"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
)

type Verify struct {
	Email string
	Code  string
}

type VerifyHandler struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	cache    Cache
	verifier Verifier
}

type VerifyHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Cache    Cache
	Verifier Verifier
}

func NewVerifyHandler(args VerifyHandlerArgs) *VerifyHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &VerifyHandler{
		tracer:   args.Tracer,
		logger:   args.Logger,
		cache:    args.Cache,
		verifier: args.Verifier,
	}
}

// Handle checks a submitted code against the cached one. Every attempt burns
// the entry: a wrong guess invalidates the code, and a right one consumes it,
// so each issued code is good for exactly one try.
func (h *VerifyHandler) Handle(ctx context.Context, cmd Verify) error {
	const op = "VerifyHandler.Handle"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	email := verification.NormalizeEmail(cmd.Email)
	span.SetAttributes(attribute.String("verification.email", logging.RedactEmail(email)))

	matched, found := h.cache.Consume(email, cmd.Code)
	if !found {
		err := errorx.NewInvalidKey()
		span.RecordError(err)
		span.SetStatus(codes.Error, "no pending verification code")
		return err
	}
	if !matched {
		err := errorx.NewInvalidVerificationCode()
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification code mismatch")
		return err
	}
	span.AddEvent("verification code consumed")

	reply, err := h.verifier.MarkVerified(ctx, email, cmd.Code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to mark email verified")
		return errorx.Wrap(err, op)
	}
	if !reply.Success {
		err := errorx.NewUpstreamError().WithMessage(reply.Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity service rejected verification")
		return err
	}

	h.logger.InfoContext(ctx, "email verified",
		slog.String("email", logging.RedactEmail(email)),
	)
	return nil
}
