package verification

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/application/verification/cmd"
	"gitlab.com/onboardly/accounts-backend/pkg/env"
)

type App struct {
	CMD Command
}

type Command struct {
	SendCode *cmd.SendCodeHandler
	Verify   *cmd.VerifyHandler
}

type Args struct {
	Tracer    trace.Tracer
	Logger    *slog.Logger
	Mode      env.Mode
	Cache     cmd.Cache
	Publisher cmd.Publisher
	Verifier  cmd.Verifier
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			SendCode: cmd.NewSendCodeHandler(cmd.SendCodeHandlerArgs{
				Tracer:    args.Tracer,
				Logger:    args.Logger,
				Mode:      args.Mode,
				Cache:     args.Cache,
				Publisher: args.Publisher,
			}),
			Verify: cmd.NewVerifyHandler(cmd.VerifyHandlerArgs{
				Tracer:   args.Tracer,
				Logger:   args.Logger,
				Cache:    args.Cache,
				Verifier: args.Verifier,
			}),
		},
	}
}
