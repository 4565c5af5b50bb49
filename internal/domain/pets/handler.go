package pets

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	// Paleta sugerida para el selector de la UI
	r.Get("/pet-types", listPetTypesHandler(svc))
}

// createPetRequest solo se usa para documentar el body en swagger;
// el decode real va por map para detectar campos faltantes.
type createPetRequest struct {
	Name string `json:"name" example:"Buddy"`
	Type string `json:"type" example:"dog"`
	Age  int    `json:"age" example:"3"`
}

// updatePetRequest: todos opcionales, lo que no venga no se toca.
type updatePetRequest struct {
	Name *string `json:"name,omitempty" example:"Max"`
	Type *string `json:"type,omitempty" example:"dog"`
	Age  *int    `json:"age,omitempty" example:"4"`
}

type petResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Buddy"`
	Type      string    `json:"type" example:"dog"`
	Age       int       `json:"age" example:"3"`
	CreatedAt time.Time `json:"created_at"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type petTypeResponse struct {
	Value string `json:"value" example:"dog"`
	Label string `json:"label" example:"Dog"`
}

type errorResponse struct {
	Error   string `json:"error" example:"invalid input"`
	Field   string `json:"field,omitempty" example:"name"`
	Rule    string `json:"rule,omitempty" example:"min_length"`
	Message string `json:"message,omitempty" example:"Name is required"`
}

// createPetHandler godoc
// @Summary      Create a pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      createPetRequest  true  "pet"
// @Success      201   {object}  petResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := decodeObject(w, r)
		if !ok {
			return
		}

		in, err := createInputFromRaw(raw)
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary      List pets, newest first
// @Tags         pets
// @Produce      json
// @Success      200  {array}   petResponse
// @Failure      500  {object}  errorResponse
// @Router       /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary      Get a pet by id
// @Tags         pets
// @Produce      json
// @Param        petID  path      int  true  "pet id"
// @Success      200    {object}  petResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		p, found, err := svc.Get(r.Context(), GetInput{ID: id})
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			writeNotFound(w)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary      Partially update a pet
// @Description  Only the fields present in the body are applied. An empty body returns the pet unchanged.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        petID  path      int               true  "pet id"
// @Param        body   body      updatePetRequest  true  "fields to change"
// @Success      200    {object}  petResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		// Decodificamos a map para saber qué campos vinieron realmente
		// ("age": 0 presente != age omitido).
		raw, ok := decodeObject(w, r)
		if !ok {
			return
		}

		in, err := updateInputFromRaw(id, raw)
		if err != nil {
			writeError(w, err)
			return
		}

		updated, found, err := svc.Update(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			writeNotFound(w)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary      Delete a pet
// @Description  deleted is false when no pet had that id.
// @Tags         pets
// @Produce      json
// @Param        petID  path      int  true  "pet id"
// @Success      200    {object}  deleteResponse
// @Failure      400    {object}  errorResponse
// @Router       /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		deleted, err := svc.Delete(r.Context(), DeleteInput{ID: id})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
	}
}

// listPetTypesHandler godoc
// @Summary      Suggested pet types for the UI selector
// @Tags         pets
// @Produce      json
// @Success      200  {array}  petTypeResponse
// @Router       /pet-types [get]
func listPetTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		types := svc.Types()
		out := make([]petTypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, petTypeResponse{Value: t.Value, Label: t.Label})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createInputFromRaw(raw map[string]json.RawMessage) (CreateInput, error) {
	name, err := stringField(raw, "name")
	if err != nil {
		return CreateInput{}, err
	}
	typ, err := stringField(raw, "type")
	if err != nil {
		return CreateInput{}, err
	}
	age, err := intField(raw, "age")
	if err != nil {
		return CreateInput{}, err
	}

	// En create los tres son obligatorios.
	required := []struct {
		field   string
		present bool
	}{
		{"name", name.IsSet()},
		{"type", typ.IsSet()},
		{"age", age.IsSet()},
	}
	for _, f := range required {
		if !f.present {
			return CreateInput{}, &ValidationError{Field: f.field, Rule: RuleRequired, Message: f.field + " is required"}
		}
	}

	return CreateInput{
		Name: name.ValueOr(""),
		Type: typ.ValueOr(""),
		Age:  age.ValueOr(0),
	}, nil
}

func updateInputFromRaw(id int64, raw map[string]json.RawMessage) (UpdateInput, error) {
	name, err := stringField(raw, "name")
	if err != nil {
		return UpdateInput{}, err
	}
	typ, err := stringField(raw, "type")
	if err != nil {
		return UpdateInput{}, err
	}
	age, err := intField(raw, "age")
	if err != nil {
		return UpdateInput{}, err
	}
	return UpdateInput{ID: id, Name: name, Type: typ, Age: age}, nil
}

func stringField(raw map[string]json.RawMessage, field string) (Optional[string], error) {
	v, ok := raw[field]
	if !ok {
		return None[string](), nil
	}
	var s string
	if len(v) == 0 || v[0] != '"' || json.Unmarshal(v, &s) != nil {
		return None[string](), &ValidationError{Field: field, Rule: RuleType, Message: field + " must be a string"}
	}
	return Some(s), nil
}

// intField acepta 3 y 3.0, rechaza 3.5 (integer) y "3"/null (type).
func intField(raw map[string]json.RawMessage, field string) (Optional[int], error) {
	v, ok := raw[field]
	if !ok {
		return None[int](), nil
	}
	var f float64
	if len(v) == 0 || v[0] == '"' || json.Unmarshal(v, &f) != nil || string(v) == "null" {
		return None[int](), &ValidationError{Field: field, Rule: RuleType, Message: field + " must be a number"}
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return None[int](), &ValidationError{Field: field, Rule: RuleInteger, Message: field + " must be an integer"}
	}
	return Some(int(f)), nil
}

func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return nil, false
	}
	return raw, true
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Age:       p.Age,
		CreatedAt: p.CreatedAt,
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "pet not found"})
}

func writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   ErrInvalidInput.Error(),
			Field:   ve.Field,
			Rule:    ve.Rule,
			Message: ve.Message,
		})
	default:
		// storage u otros: no exponemos el detalle
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
