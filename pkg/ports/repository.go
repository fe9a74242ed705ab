package ports

import (
	"context"

	"github.com/aretw0/storedesk/pkg/domain"
)

// Repository persists one kind of entity.
// Implementations must return domain.ErrNotFound for unknown ids and must isolate
// callers from stored values (mutating a returned value never changes the store).
type Repository[T domain.Entity] interface {
	// Get returns the entity with the given id.
	Get(ctx context.Context, id int) (T, error)

	// List returns every entity ordered by ascending id.
	List(ctx context.Context) ([]T, error)

	// Insert assigns a fresh id to v, stores it and returns the id.
	Insert(ctx context.Context, v T) (int, error)

	// Put replaces an existing entity. Returns domain.ErrNotFound if v.GetID() is unknown.
	Put(ctx context.Context, v T) error

	// Delete removes the entity. Returns domain.ErrNotFound if id is unknown.
	Delete(ctx context.Context, id int) error
}

// Repositories bundles one repository per entity kind.
type Repositories struct {
	Clients    Repository[*domain.Client]
	Categories Repository[*domain.Category]
	Products   Repository[*domain.Product]
	Orders     Repository[*domain.Order]
}
