package cmd

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

type Update struct {
	AccountID     account.ID
	FirstName     string
	LastName      string
	DateOfBirth   time.Time
	StreetAddress string
	PostalCode    string
	City          string

	// Optional fields; nil leaves the stored value untouched.
	PhoneNumber *string
	Image       *ImageUpload
}

type UpdateHandler struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	repo     Repo
	storage  ImageStorage
	imagesvc *account.ImageService
}

type UpdateHandlerArgs struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	Repo         Repo
	ImageStorage ImageStorage
	ImageService *account.ImageService
}

func NewUpdateHandler(args UpdateHandlerArgs) *UpdateHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &UpdateHandler{
		tracer:   args.Tracer,
		logger:   args.Logger,
		repo:     args.Repo,
		storage:  args.ImageStorage,
		imagesvc: args.ImageService,
	}
}

func (h *UpdateHandler) Handle(ctx context.Context, cmd Update) error {
	const op = "UpdateHandler.Handle"
	ctx, span := h.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("account.id", cmd.AccountID.String()))

	var imageURL *string
	if cmd.Image != nil {
		url, err := h.uploadImage(ctx, cmd.Image)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to upload profile image")
			return err
		}
		imageURL = &url
	}

	var previousImageURL string
	err := h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		previousImageURL = a.ProfileImageURL()
		return a.ApplyChange(account.Changeset{
			FirstName:       cmd.FirstName,
			LastName:        cmd.LastName,
			DateOfBirth:     cmd.DateOfBirth,
			StreetAddress:   cmd.StreetAddress,
			PostalCode:      cmd.PostalCode,
			City:            cmd.City,
			PhoneNumber:     cmd.PhoneNumber,
			ProfileImageURL: imageURL,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update account")
		return errorx.Wrap(err, op)
	}

	if imageURL != nil && previousImageURL != *imageURL {
		h.removeReplacedImage(ctx, previousImageURL)
	}

	h.logger.InfoContext(ctx, "account updated", slog.String("account_id", cmd.AccountID.String()))
	return nil
}

// removeReplacedImage cleans up the stored object a new upload superseded.
// The row already points at the new image, so a failed delete only leaks an
// orphaned object and is not surfaced to the caller.
func (h *UpdateHandler) removeReplacedImage(ctx context.Context, url string) {
	key, ok := h.imagesvc.KeyFromURL(url)
	if !ok {
		return
	}
	if err := h.storage.DeleteFile(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "failed to delete replaced profile image",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (h *UpdateHandler) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	const op = "UpdateHandler.uploadImage"

	if err := h.imagesvc.ValidateImageFile(img.ContentType, img.Size); err != nil {
		return "", err
	}

	key := h.imagesvc.GenerateKey(img.Filename)
	if err := h.storage.UploadFile(ctx, key, img.File, img.ContentType); err != nil {
		return "", errorx.NewUpstreamError().WithCause(err, op)
	}

	return h.imagesvc.BuildImageURL(key), nil
}
