// Package migrations aplica el esquema embebido con golang-migrate.
// Hay un directorio de scripts por dialecto (postgres, sqlite).
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Logger es lo mínimo que pide migrate para loguear.
type Logger interface {
	Printf(format string, v ...any)
	Verbose() bool
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func Up(driver, dsn string, log Logger) error {
	m, err := open(driver, dsn, log)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

// Down revierte steps migraciones.
func Down(driver, dsn string, steps int, log Logger) error {
	if steps < 1 {
		return fmt.Errorf("migrations: down: steps must be >= 1, got %d", steps)
	}
	m, err := open(driver, dsn, log)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: down: %w", err)
	}
	return nil
}

// Version devuelve la versión aplicada (0 si no hay ninguna) y si quedó dirty.
func Version(driver, dsn string) (uint, bool, error) {
	m, err := open(driver, dsn, nil)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(m)

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrations: version: %w", err)
	}
	return v, dirty, nil
}

// Force marca version como aplicada y limpia el flag dirty, sin correr SQL.
func Force(driver, dsn string, version int, log Logger) error {
	m, err := open(driver, dsn, log)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Force(version); err != nil {
		return fmt.Errorf("migrations: force: %w", err)
	}
	return nil
}

func open(driver, dsn string, log Logger) (*migrate.Migrate, error) {
	url, err := DatabaseURL(driver, dsn)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	if log != nil {
		m.Log = log
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}

// DatabaseURL traduce driver + DSN del servicio al URL que entiende migrate.
func DatabaseURL(driver, dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", errors.New("migrations: empty dsn")
	}

	switch driver {
	case "sqlite":
		return "sqlite://" + dsn, nil
	case "postgres":
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(dsn, prefix) {
				return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
			}
		}
		return "", fmt.Errorf("migrations: postgres dsn must be a postgres:// url")
	default:
		return "", fmt.Errorf("migrations: unsupported driver %q", driver)
	}
}
