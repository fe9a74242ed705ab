package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

var _ ports.ProductService = (*Products)(nil)

// Products implements ports.ProductService.
type Products struct {
	repos  ports.Repositories
	logger *slog.Logger
}

// FindByID returns the product or domain.ErrNotFound.
func (s *Products) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return s.repos.Products.Get(ctx, id)
}

// SearchByText matches products whose name contains text, ignoring case.
func (s *Products) SearchByText(ctx context.Context, text string) ([]*domain.Product, error) {
	all, err := s.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(p *domain.Product) bool { return containsFold(p.Name, text) }), nil
}

// Add stores a new product. Linked categories must exist.
func (s *Products) Add(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	for _, id := range p.CategoryIDs {
		if _, err := s.repos.Categories.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to add product: category %d: %w", id, err)
		}
	}
	if _, err := s.repos.Products.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	s.logger.Debug("product added", "product_id", p.ID, "categories", len(p.CategoryIDs))
	return p, nil
}

// Update persists changed product fields.
func (s *Products) Update(ctx context.Context, p *domain.Product) error {
	if err := s.repos.Products.Put(ctx, p); err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return nil
}

// Remove deletes the product. Existing order items keep their captured price.
func (s *Products) Remove(ctx context.Context, p *domain.Product) error {
	if err := s.repos.Products.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to remove product %d: %w", p.ID, err)
	}
	s.logger.Debug("product removed", "product_id", p.ID)
	return nil
}

// LoadCategories populates p.Categories from p.CategoryIDs, skipping removed categories.
func (s *Products) LoadCategories(ctx context.Context, p *domain.Product) error {
	cats := make([]*domain.Category, 0, len(p.CategoryIDs))
	for _, id := range p.CategoryIDs {
		c, err := s.repos.Categories.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		cats = append(cats, c)
	}
	p.Categories = cats
	return nil
}
