package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-registry/internal/domain/pets"
)

var _ pets.Repository = (*PetsRepo)(nil)

// id y created_at los asigna Postgres (BIGSERIAL / DEFAULT now()).
const (
	sqlInsertPet = `
		INSERT INTO pets (name, type, age)
		VALUES ($1, $2, $3)
		RETURNING id, name, type, age, created_at`

	sqlGetPetByID = `
		SELECT id, name, type, age, created_at
		FROM   pets
		WHERE  id = $1`

	sqlListPets = `
		SELECT id, name, type, age, created_at
		FROM   pets
		ORDER  BY created_at DESC, id DESC`

	sqlDeletePet = `DELETE FROM pets WHERE id = $1`
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Insert(ctx context.Context, p pets.NewPet) (pets.Pet, error) {
	out, err := scanPet(r.db.QueryRowContext(ctx, sqlInsertPet, p.Name, p.Type, p.Age))
	if err != nil {
		return pets.Pet{}, pets.WrapStorage("insert", err)
	}
	return out, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	out, err := scanPet(r.db.QueryRowContext(ctx, sqlGetPetByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, false, nil
		}
		return pets.Pet{}, false, pets.WrapStorage("get", err)
	}
	return out, true, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, sqlListPets)
	if err != nil {
		return nil, pets.WrapStorage("list", err)
	}
	defer rows.Close()

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

// UpdateByID: PATCH real, solo se setean los campos presentes.
func (r *PetsRepo) UpdateByID(ctx context.Context, id int64, c pets.Changes) (pets.Pet, bool, error) {
	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	argIdx := 1

	if v, ok := c.Name.Get(); ok {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, v)
		argIdx++
	}
	if v, ok := c.Type.Get(); ok {
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, v)
		argIdx++
	}
	if v, ok := c.Age.Get(); ok {
		setClauses = append(setClauses, fmt.Sprintf("age = $%d", argIdx))
		args = append(args, v)
		argIdx++
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE pets
		SET    %s
		WHERE  id = $%d
		RETURNING id, name, type, age, created_at`,
		strings.Join(setClauses, ", "), argIdx)

	out, err := scanPet(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, false, nil
		}
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
	var p pets.Pet
	if err := s.Scan(&p.ID, &p.Name, &p.Type, &p.Age, &p.CreatedAt); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
