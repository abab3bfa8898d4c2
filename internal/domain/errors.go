package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadySelected    = errors.New("el producto ya fue seleccionado por otro usuario")
	ErrInvalidToken       = errors.New("token inválido o expirado")
)

// ValidationError agrupa errores de validación por campo. Se renderiza como
// 400 con un objeto fields en el cuerpo, al estilo de errores de formulario.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "entrada inválida"
}

// NewValidationError construye un ValidationError con un primer campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add agrega un error de campo y devuelve el mismo ValidationError.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
	return e
}
