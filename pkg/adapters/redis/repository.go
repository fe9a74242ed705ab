package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is prepended to every key written by the adapter.
const DefaultPrefix = "storedesk:"

// Repository implements ports.Repository using Redis.
//
// Layout for kind "client" and the default prefix:
//
//	storedesk:client:<id>   JSON document
//	storedesk:client:index  ZSET of ids (score = id)
//	storedesk:client:seq    INCR counter for id assignment
type Repository[T domain.Entity] struct {
	client *backend.Client
	prefix string
	kind   string
	newFn  func() T
}

type Option func(*options)

type options struct {
	prefix string
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func buildOptions(opts []Option) options {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRepository creates a repository for one entity kind from an existing client.
func NewRepository[T domain.Entity](client *backend.Client, kind string, newFn func() T, opts ...Option) *Repository[T] {
	o := buildOptions(opts)
	return &Repository[T]{
		client: client,
		prefix: o.prefix,
		kind:   kind,
		newFn:  newFn,
	}
}

// NewRepositories creates the four entity repositories sharing one client.
func NewRepositories(client *backend.Client, opts ...Option) ports.Repositories {
	return ports.Repositories{
		Clients:    NewRepository(client, "client", func() *domain.Client { return new(domain.Client) }, opts...),
		Categories: NewRepository(client, "category", func() *domain.Category { return new(domain.Category) }, opts...),
		Products:   NewRepository(client, "product", func() *domain.Product { return new(domain.Product) }, opts...),
		Orders:     NewRepository(client, "order", func() *domain.Order { return new(domain.Order) }, opts...),
	}
}

// Dial creates a client for the given address and verifies the connection.
func Dial(ctx context.Context, address, password string, db int) (*backend.Client, error) {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}
	return rdb, nil
}

func (r *Repository[T]) key(id int) string {
	return r.prefix + r.kind + ":" + strconv.Itoa(id)
}

func (r *Repository[T]) indexKey() string {
	return r.prefix + r.kind + ":index"
}

func (r *Repository[T]) seqKey() string {
	return r.prefix + r.kind + ":seq"
}

// Get loads the entity from Redis.
func (r *Repository[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s %d from redis: %w", r.kind, id, err)
	}
	return r.decode(val)
}

// List reads the id index and fetches all documents in one MGET.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	members, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", r.kind, err)
	}
	if len(members) == 0 {
		return []T{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt %s index member %q: %w", r.kind, m, err)
		}
		keys[i] = r.key(id)
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s documents: %w", r.kind, err)
	}

	out := make([]T, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Index entry without a document; skip it.
			continue
		}
		ent, err := r.decode(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

// Insert allocates an id with INCR and writes document and index in one pipeline.
func (r *Repository[T]) Insert(ctx context.Context, v T) (int, error) {
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", r.kind, err)
	}
	id := int(seq)
	v.SetID(id)

	data, err := json.Marshal(v)
	if err != nil {
		v.SetID(0)
		return 0, fmt.Errorf("failed to marshal %s: %w", r.kind, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(id), data, 0)
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{
		Score:  float64(id),
		Member: strconv.Itoa(id),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		v.SetID(0)
		return 0, fmt.Errorf("failed to save %s to redis: %w", r.kind, err)
	}
	return id, nil
}

// Put overwrites an existing document (SET XX).
func (r *Repository[T]) Put(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.kind, err)
	}
	ok, err := r.client.SetXX(ctx, r.key(v.GetID()), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", r.kind, v.GetID(), err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the document and its index entry.
func (r *Repository[T]) Delete(ctx context.Context, id int) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.key(id))
	pipe.ZRem(ctx, r.indexKey(), strconv.Itoa(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.kind, id, err)
	}
	if del.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) decode(s string) (T, error) {
	v := r.newFn()
	if err := json.Unmarshal([]byte(s), v); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal %s: %w", r.kind, err)
	}
	return v, nil
}
