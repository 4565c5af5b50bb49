package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-registry/internal/domain/pets"
)

var _ pets.Repository = (*PetsRepo)(nil)

// created_at se guarda como TEXT de ancho fijo en UTC, así el orden
// lexicográfico coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	sqlInsertPet = `
		INSERT INTO pets (name, type, age, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, name, type, age, created_at`

	sqlGetPetByID = `
		SELECT id, name, type, age, created_at
		FROM   pets
		WHERE  id = ?`

	sqlListPets = `
		SELECT id, name, type, age, created_at
		FROM   pets
		ORDER  BY created_at DESC, id DESC`

	sqlDeletePet = `DELETE FROM pets WHERE id = ?`
)

type PetsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db, now: time.Now}
}

func (r *PetsRepo) Insert(ctx context.Context, p pets.NewPet) (pets.Pet, error) {
	createdAt := r.now().UTC().Format(timeLayout)
	row := r.db.QueryRowContext(ctx, sqlInsertPet, p.Name, p.Type, p.Age, createdAt)

	out, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, pets.WrapStorage("insert", err)
	}
	return out, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	out, err := scanPet(r.db.QueryRowContext(ctx, sqlGetPetByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, false, nil
	}
	if err != nil {
		return pets.Pet{}, false, pets.WrapStorage("get", err)
	}
	return out, true, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, sqlListPets)
	if err != nil {
		return nil, pets.WrapStorage("list", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, pets.WrapStorage("list", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pets.WrapStorage("list", err)
	}
	return out, nil
}

// UpdateByID arma el SET solo con los campos presentes.
func (r *PetsRepo) UpdateByID(ctx context.Context, id int64, c pets.Changes) (pets.Pet, bool, error) {
	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if v, ok := c.Name.Get(); ok {
		setClauses = append(setClauses, "name = ?")
		args = append(args, v)
	}
	if v, ok := c.Type.Get(); ok {
		setClauses = append(setClauses, "type = ?")
		args = append(args, v)
	}
	if v, ok := c.Age.Get(); ok {
		setClauses = append(setClauses, "age = ?")
		args = append(args, v)
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE pets
		SET    %s
		WHERE  id = ?
		RETURNING id, name, type, age, created_at`, strings.Join(setClauses, ", "))

	out, err := scanPet(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, false, nil
	}
	if err != nil {
		return pets.Pet{}, false, pets.WrapStorage("update", err)
	}
	return out, true, nil
}

func (r *PetsRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, sqlDeletePet, id)
	if err != nil {
		return false, pets.WrapStorage("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pets.WrapStorage("delete", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p         pets.Pet
		createdAt string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Type, &p.Age, &createdAt); err != nil {
		return pets.Pet{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	p.CreatedAt = t
	return p, nil
}
