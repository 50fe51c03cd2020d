package query

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

var (
	tracer = otel.Tracer("accounts/application/account/query")
	logger = otelslog.NewLogger("accounts/application/account/query")
)

type AccountGetter interface {
	GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error)
	GetAccountByUserID(ctx context.Context, userID string) (*account.Account, error)
}

type EmailGetter interface {
	GetEmailByID(ctx context.Context, userID string) (identity.EmailReply, error)
}

// AccountView is the read model handed to the HTTP layer. The email lives
// only in the identity service, so every view is stitched together from the
// local row and a remote lookup.
type AccountView struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	ProfileImageURL string    `json:"profile_image_url"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	StreetAddress   string    `json:"street_address"`
	PostalCode      string    `json:"postal_code"`
	City            string    `json:"city"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GetHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   AccountGetter
	emails EmailGetter
}

type GetHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   AccountGetter
	Emails EmailGetter
}

func NewGetHandler(args GetHandlerArgs) *GetHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &GetHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
		emails: args.Emails,
	}
}

func (h *GetHandler) ByID(ctx context.Context, id account.ID) (AccountView, error) {
	const op = "GetHandler.ByID"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("account.id", id.String()))

	acc, err := h.repo.GetAccountByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get account")
		return AccountView{}, errorx.Wrap(err, op)
	}

	return h.toView(ctx, span, acc)
}

func (h *GetHandler) ByUserID(ctx context.Context, userID string) (AccountView, error) {
	const op = "GetHandler.ByUserID"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("account.user_id", userID))

	acc, err := h.repo.GetAccountByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get account")
		return AccountView{}, errorx.Wrap(err, op)
	}

	return h.toView(ctx, span, acc)
}

// toView resolves the account's email from the identity service. An account
// whose identity user cannot be resolved is reported as absent rather than
// served half-filled.
func (h *GetHandler) toView(ctx context.Context, span trace.Span, acc *account.Account) (AccountView, error) {
	reply, err := h.emails.GetEmailByID(ctx, acc.UserID())
	if err == nil && (!reply.Success || reply.Email == "") {
		err = errorx.NewResourceNotFound("account")
	}
	if err != nil {
		h.logger.WarnContext(ctx, "could not resolve email for account",
			slog.String("account_id", acc.ID().String()),
			slog.String("user_id", acc.UserID()),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve account email")
		return AccountView{}, errorx.NewResourceNotFound("account").WithCause(err)
	}

	return AccountView{
		ID:              acc.ID().String(),
		UserID:          acc.UserID(),
		Email:           reply.Email,
		FirstName:       acc.FirstName(),
		LastName:        acc.LastName(),
		DateOfBirth:     acc.DateOfBirth(),
		ProfileImageURL: acc.ProfileImageURL(),
		PhoneNumber:     acc.PhoneNumber(),
		StreetAddress:   acc.StreetAddress(),
		PostalCode:      acc.PostalCode(),
		City:            acc.City(),
		CreatedAt:       acc.CreatedAt(),
		UpdatedAt:       acc.UpdatedAt(),
	}, nil
}
