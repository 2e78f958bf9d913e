package bootstrap

import (
	"context"
	"log/slog"

	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
	"go.uber.org/fx"
)

var MigrateModule = fx.Module("migrate",
	fx.Invoke(RunMigrations),
)

// RunMigrations applies pending atlas migrations before the server starts.
// It needs the atlas binary on PATH and is a no-op unless DB_AUTO_MIGRATE is set.
func RunMigrations(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	if !cfg.DB.AutoMigrate {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client, err := atlasexec.NewClient(".", "atlas")
			if err != nil {
				return errs.Wrap(err, "init atlas client")
			}
			res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
				URL:    cfg.DB.BuildDSN(),
				DirURL: cfg.DB.MigrationsDir,
			})
			if err != nil {
				return errs.Wrap(err, "apply migrations")
			}
			logger.Info("migrations applied", "count", len(res.Applied), "target", res.Target)
			return nil
		},
	})
}
