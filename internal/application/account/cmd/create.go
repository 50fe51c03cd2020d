package cmd

import (
	"context"
	"io"
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
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
)

var (
	tracer = otel.Tracer("accounts/application/account/cmd")
	logger = otelslog.NewLogger("accounts/application/account/cmd")
)

type ImageUpload struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type Create struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	DateOfBirth   time.Time
	PhoneNumber   string
	StreetAddress string
	PostalCode    string
	City          string
	Image         *ImageUpload
}

type CreateHandler struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	repo     Repo
	idsvc    IdentityService
	storage  ImageStorage
	imagesvc *account.ImageService
}

type CreateHandlerArgs struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	Repo         Repo
	Identity     IdentityService
	ImageStorage ImageStorage
	ImageService *account.ImageService
}

func NewCreateHandler(args CreateHandlerArgs) *CreateHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &CreateHandler{
		tracer:   args.Tracer,
		logger:   args.Logger,
		repo:     args.Repo,
		idsvc:    args.Identity,
		storage:  args.ImageStorage,
		imagesvc: args.ImageService,
	}
}

// Handle provisions an account in two systems. The remote identity user is
// created first; if the local insert then fails, the remote user is deleted
// again so no half-provisioned account survives. The caller always sees the
// original failure, even when the cleanup succeeded.
func (h *CreateHandler) Handle(ctx context.Context, cmd Create) (*account.Account, error) {
	const op = "CreateHandler.Handle"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("account.email", logging.RedactEmail(cmd.Email)))

	existsReply, err := h.idsvc.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check email existence")
		return nil, errorx.Wrap(err, op)
	}
	if existsReply.Exists {
		err := errorx.NewDuplicateEntry().WithMessage("an account with this email already exists")
		span.RecordError(err)
		span.SetStatus(codes.Error, "email already taken")
		return nil, err
	}
	span.AddEvent("email is free, proceeding with provisioning")

	imageURL := ""
	if cmd.Image != nil {
		imageURL, err = h.uploadImage(ctx, cmd.Image)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to upload profile image")
			return nil, err
		}
	}

	createReply, err := h.idsvc.CreateUser(ctx, cmd.Email, cmd.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create identity user")
		return nil, errorx.Wrap(err, op)
	}
	if !createReply.Success {
		err := identity.RemoteError(createReply.StatusCode, createReply.Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity service rejected user creation")
		return nil, err
	}
	span.AddEvent("identity user created")

	acc, err := account.NewAccount(account.NewAccountArgs{
		UserID:          createReply.UserID,
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		DateOfBirth:     cmd.DateOfBirth,
		ProfileImageURL: imageURL,
		PhoneNumber:     cmd.PhoneNumber,
		StreetAddress:   cmd.StreetAddress,
		PostalCode:      cmd.PostalCode,
		City:            cmd.City,
	})
	if err == nil {
		err = h.repo.SaveAccount(ctx, acc)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist account")
		return nil, h.compensateCreate(ctx, createReply.UserID, err)
	}

	span.AddEvent("account saved", trace.WithAttributes(
		attribute.String("account.id", acc.ID().String()),
	))
	h.logger.InfoContext(ctx, "account created",
		slog.String("account_id", acc.ID().String()),
		slog.String("user_id", acc.UserID()),
	)

	return acc, nil
}

// compensateCreate removes the identity user created earlier in the same
// request. The returned error always carries cause, never nil: a successful
// rollback does not make the original failure go away.
func (h *CreateHandler) compensateCreate(ctx context.Context, userID string, cause error) error {
	const op = "CreateHandler.compensateCreate"

	reply, err := h.idsvc.DeleteUser(ctx, userID)
	if err == nil && !reply.Success {
		err = identity.RemoteError(reply.StatusCode, reply.Message)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compensate identity user creation",
			slog.String("user_id", userID),
			slog.Any("original_error", cause),
			slog.Any("compensation_error", err),
		)
		return errorx.NewCompensationFailed().WithCause(cause, op)
	}

	h.logger.WarnContext(ctx, "identity user rolled back after local failure",
		slog.String("user_id", userID),
		slog.Any("original_error", cause),
	)
	return errorx.Wrap(cause, op)
}

func (h *CreateHandler) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	const op = "CreateHandler.uploadImage"

	if err := h.imagesvc.ValidateImageFile(img.ContentType, img.Size); err != nil {
		return "", err
	}

	key := h.imagesvc.GenerateKey(img.Filename)
	if err := h.storage.UploadFile(ctx, key, img.File, img.ContentType); err != nil {
		return "", errorx.NewUpstreamError().WithCause(err, op)
	}

	return h.imagesvc.BuildImageURL(key), nil
}
