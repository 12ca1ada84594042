package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	// ErrStorage marca fallos sistémicos de almacenamiento (begin/commit, conexión):
	// abortan el lote completo en lugar de registrarse por fila.
	ErrStorage = errors.New("fallo de almacenamiento")
)
