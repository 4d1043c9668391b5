package core

import "context"

// EmployeeRepository es la frontera de persistencia de empleados que consume
// el subsistema de autenticación y el CRUD administrativo.
type EmployeeRepository interface {
	// GetByUsername busca por username exacto. ErrNotFound si no existe.
	// Es la operación de lookup que usa el Credential Verifier.
	GetByUsername(ctx context.Context, username string) (*Employee, error)

	// GetByID busca por id. ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Employee, error)

	// Insert crea el registro y devuelve el empleado con ID asignado.
	// ErrDuplicate si el username ya existe.
	Insert(ctx context.Context, e *Employee) (*Employee, error)

	// Update persiste solo los campos no-cero de e (id requerido).
	Update(ctx context.Context, e *Employee) error

	// Page devuelve (total, página) según q, ordenado por create_time desc.
	Page(ctx context.Context, q PageQuery) (int64, []Employee, error)
}

// CategoryRepository es la frontera de persistencia de categorías.
type CategoryRepository interface {
	Insert(ctx context.Context, c *Category) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
	Page(ctx context.Context, q PageQuery) (int64, []Category, error)

	// ListByType lista categorías habilitadas. type 0 = todas.
	// Ordena por sort asc, create_time desc.
	ListByType(ctx context.Context, categoryType int) ([]Category, error)
}
