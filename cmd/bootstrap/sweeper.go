package bootstrap

import (
	"context"

	"wheelshare/internal/jobs"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/shared"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		fx.Annotate(
			jobs.NewLogNotifier,
			fx.As(new(jobs.Notifier)),
		),
		NewSweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewSweeper(uow shared.UnitOfWork, notifier jobs.Notifier, clk clock.Clock, cfg config.Config) *jobs.Sweeper {
	return jobs.NewSweeper(uow, notifier, clk, cfg.Sweep)
}

func registerSweeper(lc fx.Lifecycle, sweeper *jobs.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
