package main

import (
	"context"
	"log/slog"
	"os"

	"showreel/config"
	"showreel/internal/delivery"
	"showreel/internal/delivery/http"
	"showreel/internal/delivery/http/middleware"
	"showreel/internal/delivery/http/router/handler"
	"showreel/internal/infra/auth"
	"showreel/internal/infra/lockout"
	logs "showreel/internal/infra/log"
	"showreel/internal/infra/persistence/postgres"
	"showreel/internal/usecase"
	"showreel/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			lockout.RegisterPruneWorker,
			bootstrapAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
			lockout.NewMemoryStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCredentialService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrapAdmin creates the dashboard administrator account before the
// server starts accepting traffic. A missing admin configuration aborts
// startup.
func bootstrapAdmin(lc fx.Lifecycle, uc usecase.CredentialUsecase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return uc.EnsureAdminUser(ctx)
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
