package core

import "errors"

var (
	// ErrNotFound: no existe un registro para la clave consultada.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate: viola una restricción de unicidad (username, nombre de categoría).
	ErrDuplicate = errors.New("store: duplicate")
)
