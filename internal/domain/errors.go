package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrStockNotFound      = errors.New("stock no inicializado para este producto")
	ErrTicketNotFound     = errors.New("ticket no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStockAlreadyInit   = errors.New("stock ya inicializado para este producto")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrVersionConflict indica que la escritura condicional (id, version) no
	// afectó ninguna fila: otro proceso modificó el stock entre la lectura y
	// la escritura. El servicio de stock recarga y reintenta.
	ErrVersionConflict = errors.New("conflicto de versión en escritura de stock")
)
