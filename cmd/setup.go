package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/repositories"
	"github.com/wanderwise/wander/internal/seed"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
	"github.com/wanderwise/wander/internal/tasks"
)

// Setup initializes the local database, runs migrations, and optionally
// imports the bundled starter catalog of guides and destinations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	// The runner's engine was built from the config found at startup;
	// follow the loaded file when it points somewhere else.
	if config.Database.Path != r.config.Database.Path {
		r.engine = storage.NewEngine(config.Database.Path, r.logger)
		r.guides = repositories.NewGuideRepository(r.engine, r.logger)
		r.destinations = repositories.NewDestinationRepository(r.engine, r.logger)
		r.trips = repositories.NewTripRepository(r.engine, r.logger)
		r.pinner = tasks.NewPinEngine(r.guides, config.Offline.PinRateLimit)
	}
	r.config = config

	r.logger.Info("initializing storage", "path", config.Database.Path)

	if _, err := r.engine.Open(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if cmd.Bool("seed") {
		r.logger.Info("importing starter catalog")

		result, err := seed.Import(r.guides, r.destinations)
		if err != nil {
			return fmt.Errorf("failed to import starter catalog: %w", err)
		}
		r.writePlainln("✓ Catalog imported: %d guides, %d destinations (%d skipped)",
			result.GuidesSaved, result.DestinationsAdded, result.Skipped)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the local database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "Import the bundled starter catalog of guides and destinations",
			},
		},
		Action: r.Setup,
	}
}
