package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrBadCredentials    = errors.New("credenciales incorrectas")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrLimitReached      = errors.New("límite del plan gratuito alcanzado")
	ErrSubmissionPending = errors.New("envío idéntico en curso")
	ErrKeyReused         = errors.New("clave de envío reutilizada con otro contenido")
)
