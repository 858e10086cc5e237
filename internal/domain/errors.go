package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("error de almacenamiento")
)

// ErrEmailAlreadyExists variante de ErrConflict con mensaje propio.
var ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)

// ValidationError enumera los campos faltantes o inválidos de una petición.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []string
}

// NewValidationError construye el error con los campos indicados.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Add agrega un campo si aún no está listado.
func (e *ValidationError) Add(field string) {
	for _, f := range e.Fields {
		if f == field {
			return
		}
	}
	e.Fields = append(e.Fields, field)
}

// OrNil devuelve nil si no hay campos acumulados.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// StorageError envuelve una falla del almacén; errors.Is(err, ErrStorage) es verdadero.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError construye el error para la operación op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap expone la causa original.
func (e *StorageError) Unwrap() error { return e.Err }

// Is hace que errors.Is(err, ErrStorage) sea verdadero.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
