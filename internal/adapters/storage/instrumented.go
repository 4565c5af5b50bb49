package storage

import (
	"context"
	"time"

	"pet-registry/internal/domain/pets"
)

// Observer recibe cada operación del repo. *metrics.Metrics lo implementa.
type Observer interface {
	ObserveStore(op, result string, d time.Duration)
}

type instrumentedRepo struct {
	next pets.Repository
	obs  Observer
}

// Instrument envuelve repo y reporta op/resultado/latencia a obs.
func Instrument(repo pets.Repository, obs Observer) pets.Repository {
	return &instrumentedRepo{next: repo, obs: obs}
}

func (r *instrumentedRepo) observe(op string, start time.Time, found bool, err error) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case !found:
		result = "absent"
	}
	r.obs.ObserveStore(op, result, time.Since(start))
}

func (r *instrumentedRepo) Insert(ctx context.Context, p pets.NewPet) (pets.Pet, error) {
	start := time.Now()
	out, err := r.next.Insert(ctx, p)
	r.observe("insert", start, true, err)
	return out, err
}

func (r *instrumentedRepo) GetByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	start := time.Now()
	out, found, err := r.next.GetByID(ctx, id)
	r.observe("get", start, found, err)
	return out, found, err
}

func (r *instrumentedRepo) List(ctx context.Context) ([]pets.Pet, error) {
	start := time.Now()
	out, err := r.next.List(ctx)
	r.observe("list", start, true, err)
	return out, err
}

func (r *instrumentedRepo) UpdateByID(ctx context.Context, id int64, c pets.Changes) (pets.Pet, bool, error) {
	start := time.Now()
	out, found, err := r.next.UpdateByID(ctx, id, c)
	r.observe("update", start, found, err)
	return out, found, err
}

func (r *instrumentedRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	deleted, err := r.next.DeleteByID(ctx, id)
	r.observe("delete", start, deleted, err)
	return deleted, err
}
