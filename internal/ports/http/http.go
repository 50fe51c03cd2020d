package http

import (
	"github.com/go-chi/chi/v5"

	accountapp "gitlab.com/onboardly/accounts-backend/internal/application/account"
	verificationapp "gitlab.com/onboardly/accounts-backend/internal/application/verification"
	accounthttp "gitlab.com/onboardly/accounts-backend/internal/ports/http/account"
	"gitlab.com/onboardly/accounts-backend/internal/ports/http/middlewares"
	verificationhttp "gitlab.com/onboardly/accounts-backend/internal/ports/http/verification"
	"gitlab.com/onboardly/accounts-backend/pkg/httpx"
)

type Port struct {
	account      *accounthttp.HTTP
	verification *verificationhttp.HTTP
}

type Args struct {
	AccountApp      *accountapp.App
	VerificationApp *verificationapp.App
	Middleware      *middlewares.Middleware
	Errhandler      *httpx.ErrorHandler
}

func NewPort(args Args) *Port {
	return &Port{
		account: accounthttp.NewHTTP(accounthttp.Args{
			App:        args.AccountApp,
			SendCode:   args.VerificationApp.CMD.SendCode,
			Middleware: args.Middleware,
			Errhandler: args.Errhandler,
		}),
		verification: verificationhttp.NewHTTP(verificationhttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	p.account.Route(r)
	p.verification.Route(r)

	return r
}
