package memory

import (
	"context"
	"testing"
	"time"

	"pet-registry/internal/adapters/storage/storagetest"
	"pet-registry/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRepo_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) pets.Repository {
		return NewPetRepo()
	})
}

func TestPetRepo_CreatedAtNotBeforeCall(t *testing.T) {
	repo := NewPetRepo()
	before := time.Now().Round(0)

	p, err := repo.Insert(context.Background(), pets.NewPet{Name: "Buddy", Type: "Dog", Age: 3})
	require.NoError(t, err)
	assert.False(t, p.CreatedAt.Before(before))
}

func TestPetRepo_TiesBrokenByInsertionOrder(t *testing.T) {
	repo := NewPetRepo()
	fixed := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	a, _ := repo.Insert(ctx, pets.NewPet{Name: "A", Type: "dog", Age: 1})
	b, _ := repo.Insert(ctx, pets.NewPet{Name: "B", Type: "dog", Age: 1})
	c, _ := repo.Insert(ctx, pets.NewPet{Name: "C", Type: "dog", Age: 1})

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []pets.Pet{c, b, a}, items)
}

func TestPetRepo_IDsNotReused(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	a, _ := repo.Insert(ctx, pets.NewPet{Name: "A", Type: "dog", Age: 1})
	_, _ = repo.DeleteByID(ctx, a.ID)
	b, _ := repo.Insert(ctx, pets.NewPet{Name: "B", Type: "dog", Age: 1})

	assert.Greater(t, b.ID, a.ID)
}
