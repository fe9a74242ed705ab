package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

var _ ports.CategoryService = (*Categories)(nil)

// Categories implements ports.CategoryService.
type Categories struct {
	repos  ports.Repositories
	logger *slog.Logger
}

// FindByID returns the category or domain.ErrNotFound.
func (s *Categories) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	return s.repos.Categories.Get(ctx, id)
}

// SearchByText matches categories whose name contains text, ignoring case.
func (s *Categories) SearchByText(ctx context.Context, text string) ([]*domain.Category, error) {
	all, err := s.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(c *domain.Category) bool { return containsFold(c.Name, text) }), nil
}

// List returns all categories ordered by id.
func (s *Categories) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repos.Categories.List(ctx)
}

// IsNameInUse reports whether a category with this name exists, ignoring case.
func (s *Categories) IsNameInUse(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	all, err := s.repos.Categories.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// Add stores a new category.
func (s *Categories) Add(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if _, err := s.repos.Categories.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}
	s.logger.Debug("category added", "category_id", c.ID)
	return c, nil
}

// Update persists changed category fields.
func (s *Categories) Update(ctx context.Context, c *domain.Category) error {
	if err := s.repos.Categories.Put(ctx, c); err != nil {
		return fmt.Errorf("failed to update category %d: %w", c.ID, err)
	}
	return nil
}

// Remove unlinks the category from every product and deletes it.
func (s *Categories) Remove(ctx context.Context, c *domain.Category) error {
	products, err := s.repos.Products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if !p.RemoveCategory(c.ID) {
			continue
		}
		if err := s.repos.Products.Put(ctx, p); err != nil {
			return fmt.Errorf("failed to unlink category %d from product %d: %w", c.ID, p.ID, err)
		}
	}
	if err := s.repos.Categories.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to remove category %d: %w", c.ID, err)
	}
	s.logger.Debug("category removed", "category_id", c.ID)
	return nil
}

// LoadProducts populates c.Products.
func (s *Categories) LoadProducts(ctx context.Context, c *domain.Category) error {
	products, err := s.repos.Products.List(ctx)
	if err != nil {
		return err
	}
	c.Products = filter(products, func(p *domain.Product) bool { return p.HasCategory(c.ID) })
	return nil
}
