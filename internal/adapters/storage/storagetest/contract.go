// Package storagetest tiene la suite de contrato que debe pasar cualquier
// implementación de pets.Repository (memory, sqlite, postgres).
package storagetest

import (
	"context"
	"testing"
	"time"

	"pet-registry/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewRepoFunc devuelve un repo vacío y aislado para cada subtest.
type NewRepoFunc func(t *testing.T) pets.Repository

func Run(t *testing.T, newRepo NewRepoFunc) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, repo pets.Repository)
	}{
		{"InsertAssignsIDAndCreatedAt", testInsert},
		{"IDsIncrease", testIDsIncrease},
		{"GetByID", testGetByID},
		{"GetByIDAbsent", testGetByIDAbsent},
		{"ListEmpty", testListEmpty},
		{"ListNewestFirst", testListNewestFirst},
		{"UpdatePartial", testUpdatePartial},
		{"UpdateAgeZero", testUpdateAgeZero},
		{"UpdateNoChanges", testUpdateNoChanges},
		{"UpdateAbsent", testUpdateAbsent},
		{"DeleteOnce", testDeleteOnce},
		{"DeleteIsolated", testDeleteIsolated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newRepo(t))
		})
	}
}

func insert(t *testing.T, repo pets.Repository, name, typ string, age int) pets.Pet {
	t.Helper()
	p, err := repo.Insert(context.Background(), pets.NewPet{Name: name, Type: typ, Age: age})
	require.NoError(t, err)
	return p
}

// AssertSamePet compara campo a campo (created_at con Equal, no ==).
func AssertSamePet(t *testing.T, want, got pets.Pet) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID, "id")
	assert.Equal(t, want.Name, got.Name, "name")
	assert.Equal(t, want.Type, got.Type, "type")
	assert.Equal(t, want.Age, got.Age, "age")
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %s got %s", want.CreatedAt, got.CreatedAt)
}

func testInsert(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)

	assert.Positive(t, p.ID)
	assert.Equal(t, "Buddy", p.Name)
	assert.Equal(t, "Dog", p.Type)
	assert.Equal(t, 3, p.Age)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
}

func testIDsIncrease(t *testing.T, repo pets.Repository) {
	a := insert(t, repo, "A", "dog", 1)
	b := insert(t, repo, "B", "dog", 1)
	c := insert(t, repo, "C", "dog", 1)

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)
}

func testGetByID(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)

	got, found, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.True(t, found)
	AssertSamePet(t, p, got)
}

func testGetByIDAbsent(t *testing.T, repo pets.Repository) {
	_, found, err := repo.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.False(t, found)
}

func testListEmpty(t *testing.T, repo pets.Repository) {
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testListNewestFirst(t *testing.T, repo pets.Repository) {
	a := insert(t, repo, "A", "dog", 1)
	b := insert(t, repo, "B", "cat", 2)
	c := insert(t, repo, "C", "bird", 3)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	AssertSamePet(t, c, items[0])
	AssertSamePet(t, b, items[1])
	AssertSamePet(t, a, items[2])
}

func testUpdatePartial(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)

	got, found, err := repo.UpdateByID(context.Background(), p.ID, pets.Changes{Name: pets.Some("Max")})
	require.NoError(t, err)
	require.True(t, found)
	AssertSamePet(t, pets.Pet{ID: p.ID, Name: "Max", Type: "Dog", Age: 3, CreatedAt: p.CreatedAt}, got)

	stored, _, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	AssertSamePet(t, got, stored)
}

func testUpdateAgeZero(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)

	got, found, err := repo.UpdateByID(context.Background(), p.ID, pets.Changes{Age: pets.Some(0), Type: pets.Some("Golden Retriever")})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, got.Age)
	assert.Equal(t, "Golden Retriever", got.Type)
	assert.Equal(t, "Buddy", got.Name)
}

func testUpdateNoChanges(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)

	got, found, err := repo.UpdateByID(context.Background(), p.ID, pets.Changes{})
	require.NoError(t, err)
	require.True(t, found)
	AssertSamePet(t, p, got)
}

func testUpdateAbsent(t *testing.T, repo pets.Repository) {
	_, found, err := repo.UpdateByID(context.Background(), 99999, pets.Changes{Name: pets.Some("X")})
	require.NoError(t, err)
	assert.False(t, found)
}

func testDeleteOnce(t *testing.T, repo pets.Repository) {
	p := insert(t, repo, "Buddy", "Dog", 3)
	ctx := context.Background()

	deleted, err := repo.DeleteByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func testDeleteIsolated(t *testing.T, repo pets.Repository) {
	keep1 := insert(t, repo, "Keep1", "cat", 5)
	drop := insert(t, repo, "Drop", "dog", 1)
	keep2 := insert(t, repo, "Keep2", "fish", 0)
	ctx := context.Background()

	_, err := repo.DeleteByID(ctx, drop.ID)
	require.NoError(t, err)

	for _, want := range []pets.Pet{keep1, keep2} {
		got, found, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)
		require.True(t, found)
		AssertSamePet(t, want, got)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
