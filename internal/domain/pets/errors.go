package pets

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Reglas de validación (identificadores estables, viajan en la respuesta HTTP).
const (
	RuleRequired    = "required"
	RuleMinLength   = "min_length"
	RuleNonNegative = "nonnegative"
	RuleInteger     = "integer"
	RuleType        = "type"
)

// ValidationError indica qué campo falló y qué regla violó.
// errors.Is(err, ErrInvalidInput) es true para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Rule)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StorageError envuelve fallas de infraestructura del storage (conexión, driver, etc).
// El not-found NO es un StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorage es el helper que usan los adapters para clasificar errores del driver.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reporta si err viene del storage.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
