package cliente

import "context"

// Filters narrows a client listing. Zero-valued fields are ignored.
type Filters struct {
	Nome   string       `json:"nome,omitempty"`
	Tipo   *TipoCliente `json:"tipo,omitempty"`
	Ativo  *bool        `json:"ativo,omitempty"`
	Search string       `json:"search,omitempty"`
}

// Order is a validated sort instruction: Field is a column from the
// clientes sort allow-list, Direction is "asc" or "desc".
type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// ListQuery carries the fully normalized parameters of a paginated listing
type ListQuery struct {
	Filters Filters
	Order   Order
	Page    int
	Limit   int
}

// Offset returns the row offset for the current page
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Repository defines the persistence contract for Cliente records
type Repository interface {
	// FindByID finds a client by id, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uint) (*Cliente, error)

	// ListWithCount returns one page of matching rows together with the
	// total matching count, both read at a single consistent point in time
	ListWithCount(ctx context.Context, q ListQuery) ([]Cliente, int64, error)

	// FindByCnpjCpf finds a client holding the given digits-only document.
	// excludeID, when non-zero, removes that record from consideration so a
	// client never collides with itself. Returns nil when no match exists.
	FindByCnpjCpf(ctx context.Context, digits string, excludeID uint) (*Cliente, error)

	// Create persists a new client; duplicate documents surface as an
	// ALREADY_EXISTS domain error even when the pre-check raced
	Create(ctx context.Context, c *Cliente) error

	// Update applies a partial column update and returns the resulting row
	Update(ctx context.Context, id uint, changes map[string]any) (*Cliente, error)

	// Delete removes a client permanently
	Delete(ctx context.Context, id uint) error

	// Count counts clients matching the filters
	Count(ctx context.Context, f Filters) (int64, error)
}
