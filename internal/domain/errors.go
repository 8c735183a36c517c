package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrDuplicateReference = errors.New("referencia de documento duplicada")
	ErrInUse              = errors.New("recurso referenciado por movimientos de stock")
)

// ErrValidation es el nombre con el que la capa HTTP conoce a ErrInvalidInput.
var ErrValidation = ErrInvalidInput

// Referencias colgantes: cada una satisface errors.Is(err, ErrNotFound).
var (
	ErrProductNotFound   = fmt.Errorf("producto: %w", ErrNotFound)
	ErrLocationNotFound  = fmt.Errorf("ubicación: %w", ErrNotFound)
	ErrWarehouseNotFound = fmt.Errorf("bodega: %w", ErrNotFound)
	ErrDocumentNotFound  = fmt.Errorf("documento: %w", ErrNotFound)
)

// ValidationError describe una entrada mal formada indicando el campo afectado.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
