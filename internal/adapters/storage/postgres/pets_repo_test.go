package postgres

import (
	"context"
	"os"
	"testing"

	"pet-registry/internal/adapters/storage/migrations"
	"pet-registry/internal/adapters/storage/storagetest"
	"pet-registry/internal/domain/pets"

	"github.com/stretchr/testify/require"
)

// Corre solo con PETS_TEST_POSTGRES_DSN=postgres://... (base descartable).
func TestPetsRepo_Contract(t *testing.T) {
	dsn := os.Getenv("PETS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PETS_TEST_POSTGRES_DSN not set")
	}

	require.NoError(t, migrations.Up("postgres", dsn, nil))

	db, err := Open(dsn, PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.ExecContext(context.Background(), `TRUNCATE pets RESTART IDENTITY`)
		require.NoError(t, err)
		return NewPetsRepo(db)
	})
}
