package desk

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/storedesk/pkg/domain"
)

// NewCategory asks for a unique name and an optional description.
func (d *Desk) NewCategory(ctx context.Context) error {
	d.ui.Println("   --- Making a new category ---")
	name, err := d.ui.Line(ctx, "Category name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return domain.Inputf("Category name can not be empty")
	}
	if err := d.ensureCategoryName(ctx, name); err != nil {
		return err
	}
	description, err := d.ui.Line(ctx, "Category description: ")
	if err != nil {
		return err
	}

	category, err := d.svc.Categories.Add(ctx, &domain.Category{Name: name, Description: description})
	if err != nil {
		return err
	}
	d.ui.Printf("Category [%s] added with id %d.\n", category.Name, category.ID)
	return nil
}

// ShowAllCategories lists every category.
func (d *Desk) ShowAllCategories(ctx context.Context) error {
	categories, err := d.svc.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		d.ui.Println("There are no categories yet.")
		return nil
	}
	t := newTable("All categories", "Id", "Name", "Description")
	for _, c := range categories {
		t.add(c.ID, c.Name, orDash(c.Description))
	}
	d.ui.Render(t.String())
	return nil
}

// EditCategory prompts for name and description; blank input keeps the current value.
func (d *Desk) EditCategory(ctx context.Context) error {
	category, err := d.categories.Select(ctx)
	if err != nil {
		return err
	}
	if category == nil {
		d.ui.Println("There isn't any category to edit.")
		return nil
	}

	d.ui.Printf("Edit category <%s> (leave blank to keep the current value):\n", category.Name)
	name, err := d.ui.Line(ctx, fmt.Sprintf("Name [%s]: ", category.Name))
	if err != nil {
		return err
	}
	description, err := d.ui.Line(ctx, fmt.Sprintf("Description [%s]: ", category.Description))
	if err != nil {
		return err
	}

	changed := *category
	changed.Name = keep(category.Name, name)
	changed.Description = keep(category.Description, description)
	if changed.Name == category.Name && changed.Description == category.Description {
		d.ui.Println("Nothing changed.")
		return nil
	}
	if !strings.EqualFold(changed.Name, category.Name) {
		if err := d.ensureCategoryName(ctx, changed.Name); err != nil {
			return err
		}
	}

	if err := d.svc.Categories.Update(ctx, &changed); err != nil {
		return err
	}
	*category = changed
	d.ui.Println("Updating is finished!")
	return nil
}

// DeleteCategory removes a resolved category and unlinks it from its products.
func (d *Desk) DeleteCategory(ctx context.Context) error {
	category, err := d.categories.Select(ctx)
	if err != nil {
		return err
	}
	if category == nil {
		d.ui.Println("No category found")
		return nil
	}
	ok, err := d.confirmRemoval(ctx, fmt.Sprintf("category [%s]", category.Name))
	if err != nil || !ok {
		return err
	}
	return d.removed(d.svc.Categories.Remove(ctx, category), "category", category.ID)
}

func (d *Desk) ensureCategoryName(ctx context.Context, name string) error {
	inUse, err := d.svc.Categories.IsNameInUse(ctx, name)
	if err != nil {
		return err
	}
	if inUse {
		return domain.Inputf("A category named [%s] already exists", name)
	}
	return nil
}
