package pets

import "time"

// Pet representa el registro de una mascota.
// ID y CreatedAt los asigna el storage al insertar y no cambian nunca.
type Pet struct {
	ID        int64
	Name      string
	Type      string // etiqueta libre; ver SuggestedTypes
	Age       int
	CreatedAt time.Time
}

// NewPet es lo que recibe el storage para insertar (sin id ni created_at).
type NewPet struct {
	Name string
	Type string
	Age  int
}

// Changes son los campos a aplicar en un update parcial.
// Solo se tocan los que están presentes.
type Changes struct {
	Name Optional[string]
	Type Optional[string]
	Age  Optional[int]
}

// Empty indica que no se envió ningún campo modificable.
func (c Changes) Empty() bool {
	return !c.Name.IsSet() && !c.Type.IsSet() && !c.Age.IsSet()
}

// Apply devuelve una copia de p con los cambios presentes aplicados.
func (c Changes) Apply(p Pet) Pet {
	p.Name = c.Name.ValueOr(p.Name)
	p.Type = c.Type.ValueOr(p.Type)
	p.Age = c.Age.ValueOr(p.Age)
	return p
}

// PetType es una sugerencia para el selector de la UI.
// El backend acepta cualquier texto no vacío en Pet.Type.
type PetType struct {
	Value string
	Label string
}

// SuggestedTypes es la paleta fija que ofrece la interfaz.
var SuggestedTypes = []PetType{
	{Value: "dog", Label: "Dog"},
	{Value: "cat", Label: "Cat"},
	{Value: "bird", Label: "Bird"},
	{Value: "fish", Label: "Fish"},
	{Value: "rabbit", Label: "Rabbit"},
	{Value: "hamster", Label: "Hamster"},
	{Value: "other", Label: "Other"},
}
