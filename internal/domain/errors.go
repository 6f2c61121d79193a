package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrPrecondition error de programación (objeto nulo, dependencia ausente); no lo corrige el usuario.
	ErrPrecondition = errors.New("precondición violada")
	// ErrStorage fallo de infraestructura al persistir o leer; no se reintenta.
	ErrStorage = errors.New("fallo de almacenamiento")
)
