package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

var _ ports.ClientService = (*Clients)(nil)

// Clients implements ports.ClientService.
type Clients struct {
	repos  ports.Repositories
	logger *slog.Logger
}

// FindByID returns the client or domain.ErrNotFound.
func (s *Clients) FindByID(ctx context.Context, id int) (*domain.Client, error) {
	return s.repos.Clients.Get(ctx, id)
}

// SearchByText matches clients whose last name starts with text, ignoring case.
func (s *Clients) SearchByText(ctx context.Context, text string) ([]*domain.Client, error) {
	all, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Client) bool { return hasPrefixFold(c.LastName, text) }), nil
}

// FindByEmail returns clients with exactly this email, ignoring case.
func (s *Clients) FindByEmail(ctx context.Context, email string) ([]*domain.Client, error) {
	email = strings.TrimSpace(email)
	all, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Client) bool { return strings.EqualFold(c.Email, email) }), nil
}

// FindByPhone returns clients with exactly this phone number.
func (s *Clients) FindByPhone(ctx context.Context, phone string) ([]*domain.Client, error) {
	phone = strings.TrimSpace(phone)
	all, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Client) bool { return phone != "" && c.PhoneNumber() == phone }), nil
}

// IsEmailInUse reports whether any client already has this email.
func (s *Clients) IsEmailInUse(ctx context.Context, email string) (bool, error) {
	found, err := s.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Add stores a new client and assigns its id.
func (s *Clients) Add(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if _, err := s.repos.Clients.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add client: %w", err)
	}
	s.logger.Debug("client added", "client_id", c.ID)
	return c, nil
}

// Update persists changed client fields.
func (s *Clients) Update(ctx context.Context, c *domain.Client) error {
	if err := s.repos.Clients.Put(ctx, c); err != nil {
		return fmt.Errorf("failed to update client %d: %w", c.ID, err)
	}
	s.logger.Debug("client updated", "client_id", c.ID)
	return nil
}

// Remove deletes the client together with its orders.
func (s *Clients) Remove(ctx context.Context, c *domain.Client) error {
	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.ClientID != c.ID {
			continue
		}
		if err := s.repos.Orders.Delete(ctx, o.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to remove order %d of client %d: %w", o.ID, c.ID, err)
		}
	}
	if err := s.repos.Clients.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to remove client %d: %w", c.ID, err)
	}
	s.logger.Debug("client removed", "client_id", c.ID)
	return nil
}

// LoadOrders populates c.Orders.
func (s *Clients) LoadOrders(ctx context.Context, c *domain.Client) error {
	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return err
	}
	c.Orders = filter(orders, func(o *domain.Order) bool { return o.ClientID == c.ID })
	for _, o := range c.Orders {
		o.Client = c
	}
	return nil
}
