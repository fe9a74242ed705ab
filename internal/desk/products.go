package desk

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aretw0/storedesk/pkg/domain"
)

// NewProduct asks for the product fields and optional categories.
func (d *Desk) NewProduct(ctx context.Context) error {
	d.ui.Println("   --- Making a new product ---")
	name, err := d.ui.Line(ctx, "Product name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return domain.Inputf("Product name can not be empty")
	}
	description, err := d.ui.Line(ctx, "Product description: ")
	if err != nil {
		return err
	}
	price, err := d.ui.Decimal(ctx, "Product price: ")
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return domain.Inputf("Price can not be negative")
	}

	product := &domain.Product{Name: name, Description: description, Price: price}
	for {
		more, err := d.ui.Confirm(ctx, "Do you want to add a category to the product?", false)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		category, err := d.categories.Select(ctx)
		if err != nil {
			return err
		}
		if category == nil {
			continue
		}
		if product.AddCategory(category) {
			d.ui.Printf("[%s] has been assigned the category [%s]\n", product.Name, category.Name)
		} else {
			d.ui.Printf("[%s] already has the category [%s]\n", product.Name, category.Name)
		}
	}

	if _, err := d.svc.Products.Add(ctx, product); err != nil {
		return err
	}
	d.ui.Printf("Product [%s] added with id %d.\n", product.Name, product.ID)
	return nil
}

// FindProduct resolves a product and prints it with its categories.
func (d *Desk) FindProduct(ctx context.Context) error {
	product, err := d.products.Select(ctx)
	if err != nil {
		return err
	}
	if product == nil {
		d.ui.Println("No products found")
		return nil
	}
	if len(product.Categories) == 0 {
		if err := d.svc.Products.LoadCategories(ctx, product); err != nil {
			return err
		}
	}

	categories := "<NO CATEGORIES>"
	if len(product.Categories) > 0 {
		names := make([]string, len(product.Categories))
		for i, c := range product.Categories {
			names[i] = c.Name
		}
		categories = strings.Join(names, ", ")
	}
	d.ui.Render(details(fmt.Sprintf("Product %d", product.ID),
		"Name", product.Name,
		"Description", orDash(product.Description),
		"Price", product.Price.StringFixed(2),
		"Categories", categories,
	))
	return nil
}

// ProductsByCategory lists the products of a resolved category.
func (d *Desk) ProductsByCategory(ctx context.Context) error {
	category, err := d.categories.Select(ctx)
	if err != nil {
		return err
	}
	if category == nil {
		d.ui.Println("No category found")
		return nil
	}
	if len(category.Products) == 0 {
		if err := d.svc.Categories.LoadProducts(ctx, category); err != nil {
			return err
		}
	}
	if len(category.Products) == 0 {
		d.ui.Printf("There are no products in [%s].\n", category.Name)
		return nil
	}

	t := newTable(category.Name, "Id", "Name", "Price")
	for _, p := range category.Products {
		t.add(p.ID, p.Name, p.Price.StringFixed(2))
	}
	d.ui.Render(t.String())
	return nil
}

// EditProduct prompts for every field; blank input keeps the current value.
func (d *Desk) EditProduct(ctx context.Context) error {
	product, err := d.products.Select(ctx)
	if err != nil {
		return err
	}
	if product == nil {
		d.ui.Println("There isn't any product to edit.")
		return nil
	}

	d.ui.Printf("Edit product <%s> (leave blank to keep the current value):\n", product.Name)
	name, err := d.ui.Line(ctx, fmt.Sprintf("Name [%s]: ", product.Name))
	if err != nil {
		return err
	}
	description, err := d.ui.Line(ctx, fmt.Sprintf("Description [%s]: ", product.Description))
	if err != nil {
		return err
	}
	price, err := d.optionalPrice(ctx, product.Price)
	if err != nil {
		return err
	}

	changed := *product
	changed.Name = keep(product.Name, name)
	changed.Description = keep(product.Description, description)
	changed.Price = price
	if changed.Name == product.Name && changed.Description == product.Description && changed.Price.Equal(product.Price) {
		d.ui.Println("Nothing changed.")
		return nil
	}

	if err := d.svc.Products.Update(ctx, &changed); err != nil {
		return err
	}
	*product = changed
	d.ui.Println("Updating is finished!")
	return nil
}

// optionalPrice reads a price where blank keeps current.
func (d *Desk) optionalPrice(ctx context.Context, current decimal.Decimal) (decimal.Decimal, error) {
	for {
		text, err := d.ui.Line(ctx, fmt.Sprintf("Price [%s]: ", current.StringFixed(2)))
		if err != nil {
			return current, err
		}
		if text == "" {
			return current, nil
		}
		price, err := decimal.NewFromString(text)
		switch {
		case err != nil:
			d.ui.Warn(fmt.Sprintf("Error: %q is not a number. Please try again.", text))
		case price.IsNegative():
			d.ui.Warn("Error: price can not be negative. Please try again.")
		default:
			return price, nil
		}
	}
}

// DeleteProduct removes a resolved product.
func (d *Desk) DeleteProduct(ctx context.Context) error {
	product, err := d.products.Select(ctx)
	if err != nil {
		return err
	}
	if product == nil {
		d.ui.Println("No products found")
		return nil
	}
	ok, err := d.confirmRemoval(ctx, fmt.Sprintf("product [%s]", product.Name))
	if err != nil || !ok {
		return err
	}
	return d.removed(d.svc.Products.Remove(ctx, product), "product", product.ID)
}
