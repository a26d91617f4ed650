// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/radar/precatorios-api/internal/config"
	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/user"
)

const seedTimeout = 2 * time.Minute

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// run applies pending migrations and makes sure the initial administrator
// exists. Running it twice leaves the database unchanged.
func run(configPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", "error", closeErr)
		}
	}()

	if err := core.Migrate(ctx, db.DB.DB); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	hasher, err := core.NewPasswordHasher(cfg.Security)
	if err != nil {
		return err
	}

	svc := user.NewService(user.NewRepository(db.DB), hasher)

	created, err := svc.EnsureAdmin(
		ctx,
		cfg.Seed.AdminEmail,
		cfg.Seed.AdminPassword,
		cfg.Seed.AdminName,
	)
	if err != nil {
		return err
	}

	if created {
		logger.Info("admin user created", "email", cfg.Seed.AdminEmail)
	} else {
		logger.Info("admin user already present", "email", cfg.Seed.AdminEmail)
	}

	return nil
}
