package pets

import (
	"strconv"
	"strings"
)

type CreateInput struct {
	Name string
	Type string
	Age  int
}

// UpdateInput: ID obligatorio, el resto opcional.
// Que no venga ningún opcional es válido (update no-op).
type UpdateInput struct {
	ID   int64
	Name Optional[string]
	Type Optional[string]
	Age  Optional[int]
}

type GetInput struct {
	ID int64
}

type DeleteInput struct {
	ID int64
}

func (in CreateInput) Validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateType(in.Type); err != nil {
		return err
	}
	return validateAge(in.Age)
}

func (in UpdateInput) Validate() error {
	if v, ok := in.Name.Get(); ok {
		if err := validateName(v); err != nil {
			return err
		}
	}
	if v, ok := in.Type.Get(); ok {
		if err := validateType(v); err != nil {
			return err
		}
	}
	if v, ok := in.Age.Get(); ok {
		return validateAge(v)
	}
	return nil
}

// Changes extrae los campos presentes del input.
func (in UpdateInput) Changes() Changes {
	return Changes{Name: in.Name, Type: in.Type, Age: in.Age}
}

// ParseID valida un id que llega como texto (path param, flag de CLI).
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: "id", Rule: RuleRequired, Message: "id is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "id", Rule: RuleInteger, Message: "id must be an integer"}
	}
	return id, nil
}

// Ojo: min length 1 sin trim ("  " es válido).
func validateName(v string) error {
	if len(v) < 1 {
		return &ValidationError{Field: "name", Rule: RuleMinLength, Message: "Name is required"}
	}
	return nil
}

func validateType(v string) error {
	if len(v) < 1 {
		return &ValidationError{Field: "type", Rule: RuleMinLength, Message: "Type is required"}
	}
	return nil
}

func validateAge(v int) error {
	if v < 0 {
		return &ValidationError{Field: "age", Rule: RuleNonNegative, Message: "Age must be a non-negative integer"}
	}
	return nil
}
