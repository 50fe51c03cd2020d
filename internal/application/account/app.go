package account

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"gitlab.com/onboardly/accounts-backend/internal/application/account/cmd"
	"gitlab.com/onboardly/accounts-backend/internal/application/account/query"
	domain "gitlab.com/onboardly/accounts-backend/internal/domain/account"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	Create *cmd.CreateHandler
	Update *cmd.UpdateHandler
	Delete *cmd.DeleteHandler
}

type Query struct {
	Get     *query.GetHandler
	Profile *query.ProfileHandler
}

type Args struct {
	Tracer       trace.Tracer
	Logger       *slog.Logger
	Repo         cmd.Repo
	Identity     IdentityService
	ImageStorage cmd.ImageStorage
	ImageService *domain.ImageService
}

// IdentityService is the full remote surface the account app needs, commands
// and queries combined.
type IdentityService interface {
	cmd.IdentityService
	query.EmailGetter
}

func NewApp(args Args) *App {
	get := query.NewGetHandler(query.GetHandlerArgs{
		Tracer: args.Tracer,
		Logger: args.Logger,
		Repo:   args.Repo,
		Emails: args.Identity,
	})

	return &App{
		CMD: Command{
			Create: cmd.NewCreateHandler(cmd.CreateHandlerArgs{
				Tracer:       args.Tracer,
				Logger:       args.Logger,
				Repo:         args.Repo,
				Identity:     args.Identity,
				ImageStorage: args.ImageStorage,
				ImageService: args.ImageService,
			}),
			Update: cmd.NewUpdateHandler(cmd.UpdateHandlerArgs{
				Tracer:       args.Tracer,
				Logger:       args.Logger,
				Repo:         args.Repo,
				ImageStorage: args.ImageStorage,
				ImageService: args.ImageService,
			}),
			Delete: cmd.NewDeleteHandler(cmd.DeleteHandlerArgs{
				Tracer:   args.Tracer,
				Logger:   args.Logger,
				Repo:     args.Repo,
				Identity: args.Identity,
			}),
		},
		Query: Query{
			Get:     get,
			Profile: query.NewProfileHandler(get),
		},
	}
}
