package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pet-registry/internal/domain/pets"
)

var _ pets.Repository = (*PetRepo)(nil)

// PetRepo guarda las mascotas en memoria (dev/tests).
// Los ids se asignan en orden creciente y no se reutilizan.
type PetRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	nextID int64
	now    func() time.Time
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID: make(map[int64]pets.Pet),
		now:  time.Now,
	}
}

func (r *PetRepo) Insert(ctx context.Context, p pets.NewPet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := pets.Pet{
		ID:        r.nextID,
		Name:      p.Name,
		Type:      p.Type,
		Age:       p.Age,
		CreatedAt: r.now().Round(0).UTC(),
	}
	r.byID[stored.ID] = stored
	return stored, nil
}

func (r *PetRepo) GetByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PetRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// created_at desc; empates => el id más alto (insertado después) primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *PetRepo) UpdateByID(ctx context.Context, id int64, c pets.Changes) (pets.Pet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, false, nil
	}
	p = c.Apply(p)
	r.byID[id] = p
	return p, true, nil
}

func (r *PetRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
