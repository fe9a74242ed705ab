package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

var _ ports.OrderService = (*Orders)(nil)

// Orders implements ports.OrderService.
type Orders struct {
	repos  ports.Repositories
	logger *slog.Logger
	now    func() time.Time
}

// FindByID returns the order or domain.ErrNotFound. Details are not loaded.
func (s *Orders) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	return s.repos.Orders.Get(ctx, id)
}

// SearchByText matches orders whose client's last name starts with text.
// Matching orders come back with details loaded.
func (s *Orders) SearchByText(ctx context.Context, text string) ([]*domain.Order, error) {
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make(map[int]bool)
	for _, c := range clients {
		if hasPrefixFold(c.LastName, text) {
			matched[c.ID] = true
		}
	}
	return s.query(ctx, func(o *domain.Order) bool { return matched[o.ClientID] })
}

// FindByDateRange returns orders issued between from and to, both inclusive.
func (s *Orders) FindByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	return s.query(ctx, func(o *domain.Order) bool {
		return !o.IssuedAt.Before(from) && !o.IssuedAt.After(to)
	})
}

// FindByClient returns the client's orders.
func (s *Orders) FindByClient(ctx context.Context, clientID int) ([]*domain.Order, error) {
	return s.query(ctx, func(o *domain.Order) bool { return o.ClientID == clientID })
}

// FindByProduct returns orders containing the product.
func (s *Orders) FindByProduct(ctx context.Context, productID int) ([]*domain.Order, error) {
	return s.query(ctx, func(o *domain.Order) bool { return o.HasProduct(productID) })
}

// Add validates and stores a new order. IssuedAt defaults to the service clock.
func (s *Orders) Add(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if len(o.Items) == 0 {
		return nil, domain.Inputf("Unable to make an order without any products in it")
	}
	if _, err := s.repos.Clients.Get(ctx, o.ClientID); err != nil {
		return nil, fmt.Errorf("failed to add order: client %d: %w", o.ClientID, err)
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return nil, domain.Inputf("Quantity must be positive")
		}
	}
	if o.IssuedAt.IsZero() {
		o.IssuedAt = s.now()
	}
	if _, err := s.repos.Orders.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to add order: %w", err)
	}
	s.logger.Debug("order added", "order_id", o.ID, "client_id", o.ClientID, "items", len(o.Items))
	return o, nil
}

// Remove deletes the order.
func (s *Orders) Remove(ctx context.Context, o *domain.Order) error {
	if err := s.repos.Orders.Delete(ctx, o.ID); err != nil {
		return fmt.Errorf("failed to remove order %d: %w", o.ID, err)
	}
	s.logger.Debug("order removed", "order_id", o.ID)
	return nil
}

// LoadDetails populates o.Client and every item's Product.
// References to removed records stay nil.
func (s *Orders) LoadDetails(ctx context.Context, o *domain.Order) error {
	c, err := s.repos.Clients.Get(ctx, o.ClientID)
	switch {
	case err == nil:
		o.Client = c
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	for i := range o.Items {
		p, err := s.repos.Products.Get(ctx, o.Items[i].ProductID)
		switch {
		case err == nil:
			o.Items[i].Product = p
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}
	return nil
}

func (s *Orders) query(ctx context.Context, keep func(*domain.Order) bool) ([]*domain.Order, error) {
	all, err := s.repos.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := filter(all, keep)
	for _, o := range out {
		if err := s.LoadDetails(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}
