package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

type Delete struct {
	AccountID account.ID
}

type DeleteHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
	idsvc  IdentityService
}

type DeleteHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Repo     Repo
	Identity IdentityService
}

func NewDeleteHandler(args DeleteHandlerArgs) *DeleteHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &DeleteHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
		idsvc:  args.Identity,
	}
}

// Handle removes an account from both systems. The identity user is
// deactivated before the local row goes away, so a failed local delete can be
// undone by reactivating it. Once the local row is gone the remote hard
// delete is the point of no return: if it fails the two systems have
// diverged and an operator has to reconcile them by hand.
func (h *DeleteHandler) Handle(ctx context.Context, cmd Delete) error {
	const op = "DeleteHandler.Handle"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("account.id", cmd.AccountID.String()))

	acc, err := h.repo.GetAccountByID(ctx, cmd.AccountID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get account")
		return errorx.Wrap(err, op)
	}
	userID := acc.UserID()

	activeReply, err := h.idsvc.SetActive(ctx, userID, false)
	if err == nil && !activeReply.Success {
		err = identity.RemoteError(activeReply.StatusCode, activeReply.Message)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deactivate identity user")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("identity user deactivated")

	acc.MarkDeleted()
	if err := h.repo.DeleteAccount(ctx, acc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete account row")
		return h.compensateDeactivate(ctx, userID, err)
	}
	span.AddEvent("account row deleted")

	deleteReply, err := h.idsvc.DeleteUser(ctx, userID)
	if err == nil && !deleteReply.Success {
		err = identity.RemoteError(deleteReply.StatusCode, deleteReply.Message)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "account deleted locally but identity user removal failed, manual reconciliation required",
			slog.String("account_id", cmd.AccountID.String()),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity user removal failed after local delete")
		return errorx.NewReconcileRequired().WithCause(err, op)
	}

	h.logger.InfoContext(ctx, "account deleted",
		slog.String("account_id", cmd.AccountID.String()),
		slog.String("user_id", userID),
	)
	return nil
}

func (h *DeleteHandler) compensateDeactivate(ctx context.Context, userID string, cause error) error {
	const op = "DeleteHandler.compensateDeactivate"

	reply, err := h.idsvc.SetActive(ctx, userID, true)
	if err == nil && !reply.Success {
		err = identity.RemoteError(reply.StatusCode, reply.Message)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reactivate identity user after local delete failure",
			slog.String("user_id", userID),
			slog.Any("original_error", cause),
			slog.Any("compensation_error", err),
		)
		return errorx.NewCompensationFailed().WithCause(cause, op)
	}

	h.logger.WarnContext(ctx, "identity user reactivated after local delete failure",
		slog.String("user_id", userID),
		slog.Any("original_error", cause),
	)
	return errorx.Wrap(cause, op)
}
