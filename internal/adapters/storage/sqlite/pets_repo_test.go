package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"pet-registry/internal/adapters/storage/migrations"
	"pet-registry/internal/adapters/storage/storagetest"
	"pet-registry/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "pets.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up("sqlite", path, nil))
	return db
}

func TestPetsRepo_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) pets.Repository {
		return NewPetsRepo(newTestDB(t))
	})
}

func TestPetsRepo_TiesBrokenByInsertionOrder(t *testing.T) {
	repo := NewPetsRepo(newTestDB(t))
	fixed := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	a, err := repo.Insert(ctx, pets.NewPet{Name: "A", Type: "dog", Age: 1})
	require.NoError(t, err)
	b, _ := repo.Insert(ctx, pets.NewPet{Name: "B", Type: "dog", Age: 1})
	c, _ := repo.Insert(ctx, pets.NewPet{Name: "C", Type: "dog", Age: 1})
	assert.True(t, fixed.Equal(a.CreatedAt))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, []int64{items[0].ID, items[1].ID, items[2].ID})
}

func TestPetsRepo_OrderAcrossFractionalSeconds(t *testing.T) {
	repo := NewPetsRepo(newTestDB(t))
	ctx := context.Background()

	// .1s vs .05s: con RFC3339Nano (ancho variable) el orden de texto saldría al revés
	times := []time.Time{
		time.Date(2025, 1, 1, 10, 0, 0, 50_000_000, time.UTC),
		time.Date(2025, 1, 1, 10, 0, 0, 100_000_000, time.UTC),
	}
	var ids []int64
	for _, ts := range times {
		ts := ts
		repo.now = func() time.Time { return ts }
		p, err := repo.Insert(ctx, pets.NewPet{Name: "x", Type: "dog", Age: 1})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[1], items[0].ID)
}

func TestPetsRepo_ClosedDBIsStorageError(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetsRepo(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.True(t, pets.IsStorage(err))

	_, _, err = repo.GetByID(context.Background(), 1)
	assert.True(t, pets.IsStorage(err))
}
