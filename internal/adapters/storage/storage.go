// Package storage elige e inicializa el backend de persistencia.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/adapters/storage/migrations"
	pg "pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/adapters/storage/sqlite"
	"pet-registry/internal/config"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/platform/logger"
)

// Store es el handle único de persistencia del proceso: se abre en main,
// se inyecta en el router y se cierra al apagar.
type Store struct {
	Pets pets.Repository

	driver string
	db     *sql.DB // nil con driver memory
}

type Options struct {
	Logger   logger.Logger
	Observer Observer // opcional: métricas por operación
}

// Open abre el backend configurado. Con AutoMigrate aplica las migraciones
// embebidas antes de devolver.
func Open(ctx context.Context, cfg config.DatabaseConfig, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "storage", "driver": cfg.Driver})

	s := &Store{driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverMemory:
		s.Pets = memory.NewPetRepo()

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		s.db = db
		s.Pets = sqlite.NewPetsRepo(db)

	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.db = db
		s.Pets = pg.NewPetsRepo(db)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if cfg.AutoMigrate && s.db != nil {
		if err := migrations.Up(cfg.Driver, cfg.DSN, migrateLogger{log}); err != nil {
			_ = s.Close()
			return nil, err
		}
		log.Info("migrations applied", nil)
	}

	if opts.Observer != nil {
		s.Pets = Instrument(s.Pets, opts.Observer)
	}

	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	log.Info("storage ready", nil)
	return s, nil
}

// Memory devuelve un Store en memoria ya listo, sin migraciones ni ping.
func Memory() *Store {
	return &Store{Pets: memory.NewPetRepo(), driver: config.DriverMemory}
}

func (s *Store) Driver() string {
	return s.driver
}

// Ping verifica que el backend responda (memory siempre ok).
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return pets.WrapStorage("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrateLogger adapta logger.Logger a la interfaz de golang-migrate.
type migrateLogger struct {
	log logger.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), nil)
}

func (l migrateLogger) Verbose() bool { return false }
