package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/app/database"
	"github.com/mytheresa/go-storefront/app/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// bootstrap loads the configuration and opens a migrated database. The
// caller owns the returned connection.
func bootstrap(cmd *cobra.Command) (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, err := openDatabase(cmd.Context(), cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.Create && (cfg.Driver == "postgres" || cfg.Driver == "postgresql") {
		logger.Info("ensuring database exists")
		if err := database.EnsureDatabase(ctx, cfg.URL); err != nil {
			return nil, err
		}
	}

	logger.Info("connecting to database", "driver", cfg.Driver)
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(ctx, db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}
