package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

var _ ports.Repository[*domain.Client] = (*Repository[*domain.Client])(nil)

// Repository implements ports.Repository in memory.
// Values are kept as JSON documents so callers never share pointers with the store.
// Safe for concurrent use.
type Repository[T domain.Entity] struct {
	newFn func() T
	data  map[int][]byte
	seq   int
	mu    sync.RWMutex
}

// NewRepository creates an empty repository. newFn must return a fresh, non-nil value
// to decode into.
func NewRepository[T domain.Entity](newFn func() T) *Repository[T] {
	return &Repository[T]{
		newFn: newFn,
		data:  make(map[int][]byte),
	}
}

// NewRepositories creates an empty in-memory repository for every entity kind.
func NewRepositories() ports.Repositories {
	return ports.Repositories{
		Clients:    NewRepository(func() *domain.Client { return new(domain.Client) }),
		Categories: NewRepository(func() *domain.Category { return new(domain.Category) }),
		Products:   NewRepository(func() *domain.Product { return new(domain.Product) }),
		Orders:     NewRepository(func() *domain.Order { return new(domain.Order) }),
	}
}

// Get returns a copy of the stored entity.
func (r *Repository[T]) Get(ctx context.Context, id int) (T, error) {
	r.mu.RLock()
	raw, ok := r.data[id]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return r.decode(raw)
}

// List returns copies of all entities ordered by id.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	ids := make([]int, 0, len(r.data))
	for id := range r.data {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	raws := make([][]byte, len(ids))
	for i, id := range ids {
		raws[i] = r.data[id]
	}
	r.mu.RUnlock()

	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := r.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Insert stores v under the next id.
func (r *Repository[T]) Insert(ctx context.Context, v T) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	v.SetID(r.seq)
	raw, err := json.Marshal(v)
	if err != nil {
		r.seq--
		v.SetID(0)
		return 0, fmt.Errorf("failed to marshal entity: %w", err)
	}
	r.data[r.seq] = raw
	return r.seq, nil
}

// Put replaces an existing entity.
func (r *Repository[T]) Put(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[v.GetID()]; !ok {
		return domain.ErrNotFound
	}
	r.data[v.GetID()] = raw
	return nil
}

// Delete removes the entity.
func (r *Repository[T]) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *Repository[T]) decode(raw []byte) (T, error) {
	v := r.newFn()
	if err := json.Unmarshal(raw, v); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return v, nil
}
