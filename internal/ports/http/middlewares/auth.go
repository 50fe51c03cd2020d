package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/pkg/ctxs"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/httpx"
)

var (
	tracer = otel.Tracer("accounts/internal/ports/http/middlewares")
	logger = otelslog.NewLogger("accounts/internal/ports/http/middlewares")
)

const TokenIssuer = "identity_rpc"

type Middleware struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	secret     []byte
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Secret     []byte
	Errhandler *httpx.ErrorHandler
}

func NewMiddleware(args Args) *Middleware {
	m := &Middleware{
		tracer:     args.Tracer,
		logger:     args.Logger,
		secret:     args.Secret,
		errhandler: args.Errhandler,
	}

	if m.tracer == nil {
		m.tracer = tracer
	}
	if m.logger == nil {
		m.logger = logger
	}
	if len(m.secret) == 0 {
		panic("secret key is required for auth middleware")
	}
	if m.errhandler == nil {
		m.errhandler = httpx.NewErrorHandler()
	}
	return m
}

// Auth accepts bearer tokens minted by the identity service and puts the
// token's user id on the request context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "AuthMiddleware")
		defer span.End()

		rawToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			err := errorx.NewInvalidCredentials().WithCause(errors.New("missing bearer token"))
			m.errhandler.HandleError(w, r, span, err, "missing bearer token")
			return
		}

		err := validation.Validate(rawToken, validation.Required, validation.Length(1, 1000))
		if err != nil {
			m.errhandler.HandleError(w, r, span, errorx.NewInvalidCredentials().WithCause(err), "invalid bearer token")
			return
		}

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
			return m.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			m.errhandler.HandleError(w, r, span, errorx.NewInvalidCredentials().WithCause(err), "failed to parse access token")
			return
		}
		if !token.Valid {
			err = errorx.NewInvalidCredentials().WithCause(errors.New("invalid access token"))
			m.errhandler.HandleError(w, r, span, err, "invalid access token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			err = errorx.NewInvalidCredentials().WithCause(errors.New("failed to parse access token claims"))
			m.errhandler.HandleError(w, r, span, err, "failed to parse access token claims")
			return
		}
		if claims["iss"] != TokenIssuer {
			err = errorx.NewInvalidCredentials().
				WithCause(fmt.Errorf("invalid access token issuer: iss=%v", claims["iss"]))
			m.errhandler.HandleError(w, r, span, err, "invalid access token issuer")
			return
		}
		uid, ok := claims["sub"].(string)
		if !ok || uid == "" {
			err = errorx.NewInvalidCredentials().
				WithCause(fmt.Errorf("user id missing in access token claims: %T", claims["sub"]))
			m.errhandler.HandleError(w, r, span, err, "user id missing in access token claims")
			return
		}
		expUnix, ok := claims["exp"].(float64)
		if !ok {
			err = errorx.NewInvalidCredentials().
				WithCause(fmt.Errorf("expiration missing in access token claims: %T", claims["exp"]))
			m.errhandler.HandleError(w, r, span, err, "expiration missing in access token claims")
			return
		}
		if time.Unix(int64(expUnix), 0).Before(time.Now().UTC()) {
			err = errorx.NewInvalidCredentials().WithCause(errors.New("access token is expired"))
			m.errhandler.HandleError(w, r, span, err, "access token is expired")
			return
		}

		ctx = ctxs.WithUser(ctx, &ctxs.User{ID: uid})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
