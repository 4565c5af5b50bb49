package pets

import "context"

// Repository es el gateway de storage: único dueño de la tabla pets.
// El bool de GetByID/UpdateByID/DeleteByID indica si la fila existía;
// un id inexistente nunca es error.
type Repository interface {
	Insert(ctx context.Context, p NewPet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, bool, error)
	List(ctx context.Context) ([]Pet, error)
	UpdateByID(ctx context.Context, id int64, c Changes) (Pet, bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
