package verificationhttp

import (
	"log/slog"
	"net/http"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	verificationapp "gitlab.com/onboardly/accounts-backend/internal/application/verification"
	"gitlab.com/onboardly/accounts-backend/internal/application/verification/cmd"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/httpx"
	"gitlab.com/onboardly/accounts-backend/pkg/logging"
	"gitlab.com/onboardly/accounts-backend/pkg/otelx"
	"gitlab.com/onboardly/accounts-backend/pkg/sanitizex"
	"gitlab.com/onboardly/accounts-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("accounts/internal/ports/http/verification")
	logger = otelslog.NewLogger("accounts/internal/ports/http/verification")
)

const codeLength = 6

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *verificationapp.Command
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *verificationapp.App
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
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/verifications", func(r chi.Router) {
		r.Post("/send", h.SendCode)
		r.Post("/verify", h.Verify)
	})
}

type SendCodeRequest struct {
	Email string `json:"email"`
}

func (r *SendCodeRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *SendCodeRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *SendCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) SendCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SendVerificationCode")
	defer span.End()

	var req SendCodeRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, errorx.NewMalformedJSON().WithCause(err), "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	if err := h.cmd.SendCode.Handle(ctx, cmd.SendCode{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to send verification code")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type VerifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

func (r *VerifyRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.VerificationCode = sanitizex.CleanSingleLine(r.VerificationCode)
}

func (r *VerifyRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.VerificationCode,
			validation.Required,
			validation.Length(codeLength, codeLength),
			is.Digit,
		),
	)
}

func (h *HTTP) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "VerifyCode")
	defer span.End()

	var req VerifyRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, errorx.NewMalformedJSON().WithCause(err), "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	verify := cmd.Verify{
		Email: req.Email,
		Code:  req.VerificationCode,
	}
	if err := h.cmd.Verify.Handle(ctx, verify); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to verify code")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}
