package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"investmate/internal/config"
	"investmate/internal/database"
	"investmate/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const usage = "usage: migrate <up|down|version|force> [N]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Named("migrate")

	m, err := migrate.New(database.MigrationsSource, database.NewConfig(cfg).URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			log.Warnf("migrate database close error: %v", dbErr)
		}
	}()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Migrations applied successfully")

	case "down":
		steps, err := stepArg(args, 1)
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Infof("Version: %d, Dirty: %v", version, dirty)

	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		log.Infof("Forced version %d", version)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, version, or force)", args[0])
	}

	return nil
}

// stepArg reads the optional positive step count after the command.
func stepArg(args []string, def int) (int, error) {
	if len(args) < 2 {
		return def, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid step count %q", args[1])
	}
	return n, nil
}
