package pets

import (
	"context"

	"pet-registry/internal/platform/logger"
)

// Service implementa los casos de uso sobre Pet.
// No guarda estado entre llamadas: cada lectura va al repo.
type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "pets"}),
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if err := in.Validate(); err != nil {
		return Pet{}, err
	}

	p, err := s.repo.Insert(ctx, NewPet{
		Name: in.Name,
		Type: in.Type,
		Age:  in.Age,
	})
	if err != nil {
		s.log.Error("pet create failed", map[string]any{"error": err.Error()})
		return Pet{}, err
	}

	s.log.Debug("pet created", map[string]any{"pet_id": p.ID})
	return p, nil
}

// List devuelve todas las mascotas, la más reciente primero.
func (s *Service) List(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("pet list failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// Get devuelve (Pet{}, false, nil) si no existe: not-found no es error.
func (s *Service) Get(ctx context.Context, in GetInput) (Pet, bool, error) {
	p, ok, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Error("pet get failed", map[string]any{"pet_id": in.ID, "error": err.Error()})
		return Pet{}, false, err
	}
	return p, ok, nil
}

// Update tiene tres salidas sin error:
//   - no existe el id   => (Pet{}, false, nil)
//   - no vino ningún campo => la fila actual, sin tocarla
//   - caso normal       => la fila con los campos presentes aplicados
func (s *Service) Update(ctx context.Context, in UpdateInput) (Pet, bool, error) {
	if err := in.Validate(); err != nil {
		return Pet{}, false, err
	}

	current, ok, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Error("pet update lookup failed", map[string]any{"pet_id": in.ID, "error": err.Error()})
		return Pet{}, false, err
	}
	if !ok {
		return Pet{}, false, nil
	}

	changes := in.Changes()
	if changes.Empty() {
		return current, true, nil
	}

	// Si alguien la borró entre el lookup y el update, el repo devuelve false.
	updated, ok, err := s.repo.UpdateByID(ctx, in.ID, changes)
	if err != nil {
		s.log.Error("pet update failed", map[string]any{"pet_id": in.ID, "error": err.Error()})
		return Pet{}, false, err
	}
	if !ok {
		return Pet{}, false, nil
	}

	s.log.Debug("pet updated", map[string]any{"pet_id": in.ID})
	return updated, true, nil
}

// Delete devuelve true solo si efectivamente se borró una fila.
func (s *Service) Delete(ctx context.Context, in DeleteInput) (bool, error) {
	deleted, err := s.repo.DeleteByID(ctx, in.ID)
	if err != nil {
		s.log.Error("pet delete failed", map[string]any{"pet_id": in.ID, "error": err.Error()})
		return false, err
	}
	if deleted {
		s.log.Debug("pet deleted", map[string]any{"pet_id": in.ID})
	}
	return deleted, nil
}

// Types devuelve la paleta sugerida para la UI.
func (s *Service) Types() []PetType {
	out := make([]PetType, len(SuggestedTypes))
	copy(out, SuggestedTypes)
	return out
}
