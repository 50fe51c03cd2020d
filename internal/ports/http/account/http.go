package accounthttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	accountapp "gitlab.com/onboardly/accounts-backend/internal/application/account"
	accountcmd "gitlab.com/onboardly/accounts-backend/internal/application/account/cmd"
	verificationcmd "gitlab.com/onboardly/accounts-backend/internal/application/verification/cmd"
	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/internal/ports/http/middlewares"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/httpx"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
	"gitlab.com/onboardly/accounts-backend/pkg/otelx"
	"gitlab.com/onboardly/accounts-backend/pkg/sanitizex"
	"gitlab.com/onboardly/accounts-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("accounts/internal/ports/http/account")
	logger = otelslog.NewLogger("accounts/internal/ports/http/account")
)

const dateLayout = "2006-01-02"

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *accountapp.Command
	query      *accountapp.Query
	sendCode   *verificationcmd.SendCodeHandler
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *accountapp.App
	SendCode   *verificationcmd.SendCodeHandler
	Middleware *middlewares.Middleware
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        &args.App.CMD,
		query:      &args.App.Query,
		sendCode:   args.SendCode,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/accounts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)

		r.Group(func(r chi.Router) {
			r.Use(h.middleware.Auth)
			r.Get("/me", h.Me)
		})
	})
}

type CreateAccountRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"date_of_birth"`
	PhoneNumber     string `json:"phone_number"`
	StreetAddress   string `json:"street_address"`
	PostalCode      string `json:"postal_code"`
	City            string `json:"city"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

func (r *CreateAccountRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.FirstName = sanitizex.CleanSingleLine(r.FirstName)
	r.LastName = sanitizex.CleanSingleLine(r.LastName)
	r.DateOfBirth = sanitizex.CleanSingleLine(r.DateOfBirth)
	r.PhoneNumber = sanitizex.CleanSingleLine(r.PhoneNumber)
	r.StreetAddress = sanitizex.CleanSingleLine(r.StreetAddress)
	r.PostalCode = sanitizex.CleanSingleLine(r.PostalCode)
	r.City = sanitizex.CleanSingleLine(r.City)
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
}

func (r *CreateAccountRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"email": logging.RedactEmail(r.Email),
		"city":  r.City,
	})
}

func (r *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Password, validationx.PasswordRules...),
		validation.Field(&r.ConfirmPassword,
			validation.Required,
			validation.By(func(any) error {
				if r.ConfirmPassword != r.Password {
					return errors.New("passwords do not match")
				}
				return nil
			}),
		),
		validation.Field(&r.FirstName, validationx.NameRules...),
		validation.Field(&r.LastName, validationx.NameRules...),
		validation.Field(&r.DateOfBirth, validation.Required, validation.Date(dateLayout).Max(time.Now())),
		validation.Field(&r.PhoneNumber, validationx.PhoneRules...),
		validation.Field(&r.StreetAddress, validationx.StreetAddressRules...),
		validation.Field(&r.PostalCode, validationx.PostalCodeRules...),
		validation.Field(&r.City, validationx.CityRules...),
		validation.Field(&r.TermsAccepted,
			validation.Required.Error("terms must be accepted"),
		),
	)
}

func (h *HTTP) Create(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.Create"
	ctx, span := h.tracer.Start(r.Context(), "CreateAccount")
	defer span.End()

	if err := r.ParseMultipartForm(account.MaxImageSize); err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	req := CreateAccountRequest{
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		DateOfBirth:     r.FormValue("date_of_birth"),
		PhoneNumber:     r.FormValue("phone_number"),
		StreetAddress:   r.FormValue("street_address"),
		PostalCode:      r.FormValue("postal_code"),
		City:            r.FormValue("city"),
		TermsAccepted:   r.FormValue("terms_accepted") == "true",
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse date of birth")
		return
	}

	image, closeImage, err := h.formImage(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read profile image")
		return
	}
	defer closeImage()

	acc, err := h.cmd.Create.Handle(ctx, accountcmd.Create{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		PhoneNumber:   req.PhoneNumber,
		StreetAddress: req.StreetAddress,
		PostalCode:    req.PostalCode,
		City:          req.City,
		Image:         image,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to create account")
		return
	}

	if err := h.sendCode.Handle(ctx, verificationcmd.SendCode{Email: req.Email}); err != nil {
		// The account exists; the user can request another code themselves.
		h.logger.WarnContext(ctx, "failed to send verification code after account creation",
			slog.String("account_id", acc.ID().String()),
			slog.Any("error", err),
		)
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"id": acc.ID().String()})
}

// formImage pulls the optional profile image out of the multipart form. The
// returned closer is always safe to defer.
func (h *HTTP) formImage(r *http.Request) (*accountcmd.ImageUpload, func(), error) {
	const op = "account.HTTP.formImage"

	file, header, err := r.FormFile("profile_image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, errorx.NewInvalidRequest().WithCause(err, op)
	}

	closeFile := func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close profile image file", slog.String("error", cerr.Error()))
		}
	}

	return &accountcmd.ImageUpload{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, closeFile, nil
}

func (h *HTTP) Get(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.Get"
	ctx, span := h.tracer.Start(r.Context(), "GetAccount")
	defer span.End()

	id, err := account.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse account id")
		return
	}

	view, err := h.query.Get.ByID(ctx, id)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get account")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"account": view})
}

func (h *HTTP) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOwnAccount")
	defer span.End()

	view, err := h.query.Profile.Handle(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get own account")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"account": view})
}

type UpdateAccountRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	DateOfBirth   string  `json:"date_of_birth"`
	StreetAddress string  `json:"street_address"`
	PostalCode    string  `json:"postal_code"`
	City          string  `json:"city"`
	PhoneNumber   *string `json:"phone_number"`
}

func (r *UpdateAccountRequest) Sanitized() {
	r.FirstName = sanitizex.CleanSingleLine(r.FirstName)
	r.LastName = sanitizex.CleanSingleLine(r.LastName)
	r.DateOfBirth = sanitizex.CleanSingleLine(r.DateOfBirth)
	r.StreetAddress = sanitizex.CleanSingleLine(r.StreetAddress)
	r.PostalCode = sanitizex.CleanSingleLine(r.PostalCode)
	r.City = sanitizex.CleanSingleLine(r.City)
	if r.PhoneNumber != nil {
		phone := sanitizex.CleanSingleLine(*r.PhoneNumber)
		r.PhoneNumber = &phone
	}
}

func (r *UpdateAccountRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"city": r.City})
}

func (r *UpdateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName, validationx.NameRules...),
		validation.Field(&r.LastName, validationx.NameRules...),
		validation.Field(&r.DateOfBirth, validation.Required, validation.Date(dateLayout).Max(time.Now())),
		validation.Field(&r.StreetAddress, validationx.StreetAddressRules...),
		validation.Field(&r.PostalCode, validationx.PostalCodeRules...),
		validation.Field(&r.City, validationx.CityRules...),
		validation.Field(&r.PhoneNumber, validationx.PhoneRules...),
	)
}

func (h *HTTP) Update(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.Update"
	ctx, span := h.tracer.Start(r.Context(), "UpdateAccount")
	defer span.End()

	id, err := account.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse account id")
		return
	}

	if err := r.ParseMultipartForm(account.MaxImageSize); err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	req := UpdateAccountRequest{
		FirstName:     r.FormValue("first_name"),
		LastName:      r.FormValue("last_name"),
		DateOfBirth:   r.FormValue("date_of_birth"),
		StreetAddress: r.FormValue("street_address"),
		PostalCode:    r.FormValue("postal_code"),
		City:          r.FormValue("city"),
	}
	if _, ok := r.MultipartForm.Value["phone_number"]; ok {
		phone := r.FormValue("phone_number")
		req.PhoneNumber = &phone
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse date of birth")
		return
	}

	image, closeImage, err := h.formImage(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read profile image")
		return
	}
	defer closeImage()

	err = h.cmd.Update.Handle(ctx, accountcmd.Update{
		AccountID:     id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		StreetAddress: req.StreetAddress,
		PostalCode:    req.PostalCode,
		City:          req.City,
		PhoneNumber:   req.PhoneNumber,
		Image:         image,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to update account")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

func (h *HTTP) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "account.HTTP.Delete"
	ctx, span := h.tracer.Start(r.Context(), "DeleteAccount")
	defer span.End()

	id, err := account.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		err = errorx.NewInvalidRequest().WithCause(err, op)
		h.errhandler.HandleError(w, r, span, err, "failed to parse account id")
		return
	}

	if err := h.cmd.Delete.Handle(ctx, accountcmd.Delete{AccountID: id}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to delete account")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}
