package main

import (
	"fmt"
	"os"
	"strconv"

	"pet-registry/internal/adapters/storage/migrations"
	"pet-registry/internal/config"
	"pet-registry/internal/platform/logger"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	// Misma resolución que la API: PETS_CONFIG + DB_DRIVER / DB_DSN.
	cfg, err := config.FromEnv()
	if err != nil {
		fatalf("loading config: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		fatalf("driver memory has no schema to migrate")
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    "pet-registry-migrate",
	}).With(map[string]any{"driver": cfg.Database.Driver})

	driver, dsn := cfg.Database.Driver, cfg.Database.DSN
	mlog := migrateLogger{log}

	switch args[0] {
	case "up":
		if err := migrations.Up(driver, dsn, mlog); err != nil {
			fatalf("up failed: %v", err)
		}
		log.Info("migrations: up completed", nil)

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				fatalf("down: invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := migrations.Down(driver, dsn, steps, mlog); err != nil {
			fatalf("down failed: %v", err)
		}
		log.Info("migrations: down completed", map[string]any{"steps": steps})

	case "version":
		v, dirty, err := migrations.Version(driver, dsn)
		if err != nil {
			fatalf("version failed: %v", err)
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			fatalf("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fatalf("force: invalid version %q", args[1])
		}
		if err := migrations.Force(driver, dsn, v, mlog); err != nil {
			fatalf("force failed: %v", err)
		}
		log.Info("migrations: forced", map[string]any{"version": v})

	default:
		usage()
		os.Exit(1)
	}
}

type migrateLogger struct {
	log logger.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...), nil)
}

func (l migrateLogger) Verbose() bool { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Rollback N migrations (default: 1)
  version      Print current migration version
  force <V>    Force set migration version (bypass dirty state)

Environment:
  PETS_CONFIG   Optional YAML config file
  DB_DRIVER     sqlite | postgres (default: sqlite)
  DB_DSN        sqlite file path or postgres:// url`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
