package ports

import (
	"context"
	"time"

	"github.com/aretw0/storedesk/pkg/domain"
)

// Finder is the read capability the entity resolver needs.
// FindByID returns domain.ErrNotFound when nothing matches.
type Finder[T any] interface {
	FindByID(ctx context.Context, id int) (T, error)
	SearchByText(ctx context.Context, text string) ([]T, error)
}

// ClientService manages clients.
type ClientService interface {
	Finder[*domain.Client]
	FindByEmail(ctx context.Context, email string) ([]*domain.Client, error)
	FindByPhone(ctx context.Context, phone string) ([]*domain.Client, error)
	IsEmailInUse(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Remove(ctx context.Context, c *domain.Client) error
	LoadOrders(ctx context.Context, c *domain.Client) error
}

// CategoryService manages categories.
type CategoryService interface {
	Finder[*domain.Category]
	List(ctx context.Context) ([]*domain.Category, error)
	IsNameInUse(ctx context.Context, name string) (bool, error)
	Add(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Remove(ctx context.Context, c *domain.Category) error
	LoadProducts(ctx context.Context, c *domain.Category) error
}

// ProductService manages products.
type ProductService interface {
	Finder[*domain.Product]
	Add(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Remove(ctx context.Context, p *domain.Product) error
	LoadCategories(ctx context.Context, p *domain.Product) error
}

// OrderService manages orders. SearchByText matches the client's last name.
type OrderService interface {
	Finder[*domain.Order]
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	FindByClient(ctx context.Context, clientID int) ([]*domain.Order, error)
	FindByProduct(ctx context.Context, productID int) ([]*domain.Order, error)
	Add(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Remove(ctx context.Context, o *domain.Order) error
	LoadDetails(ctx context.Context, o *domain.Order) error
}

// Services bundles the four service ports used by the desk.
type Services struct {
	Clients    ClientService
	Categories CategoryService
	Products   ProductService
	Orders     OrderService
}
