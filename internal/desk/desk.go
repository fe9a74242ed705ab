package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/storedesk/pkg/console"
	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/menu"
	"github.com/aretw0/storedesk/pkg/ports"
	"github.com/aretw0/storedesk/pkg/resolve"
)

// Desk holds the action handlers of the store desk. Every handler talks to the
// store through the service ports only.
type Desk struct {
	svc ports.Services
	ui  *console.Console

	clients    *resolve.Resolver[*domain.Client]
	products   *resolve.Resolver[*domain.Product]
	categories *resolve.Resolver[*domain.Category]
	orders     *resolve.Resolver[*domain.Order]

	confirmDelete bool
	logger        *slog.Logger
	hooks         domain.LifecycleHooks
}

// Option configures a Desk.
type Option func(*Desk)

// WithConfirmDelete toggles the yes/no question asked before every delete.
func WithConfirmDelete(confirm bool) Option {
	return func(d *Desk) {
		d.confirmDelete = confirm
	}
}

// WithLogger sets the logger passed down to the resolvers.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Desk) {
		d.logger = logger
	}
}

// WithHooks forwards resolver events to hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Desk) {
		d.hooks = d.hooks.Merge(hooks)
	}
}

// New creates a desk over the services, reading and writing through ui.
func New(svc ports.Services, ui *console.Console, opts ...Option) *Desk {
	d := &Desk{
		svc:           svc,
		ui:            ui,
		confirmDelete: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.clients = resolve.New[*domain.Client](svc.Clients, ui,
		resolve.WithNoun[*domain.Client]("client"),
		resolve.WithPrompt[*domain.Client]("Specify the customer's id (or customer's last name to search for specific one): > "),
		resolve.WithSummary(clientSummary),
		resolve.WithLogger[*domain.Client](d.logger),
		resolve.WithHooks[*domain.Client](d.hooks),
	)
	d.products = resolve.New[*domain.Product](svc.Products, ui,
		resolve.WithNoun[*domain.Product]("product"),
		resolve.WithPrompt[*domain.Product]("Specify the product's id (or product's name to search for specific one): > "),
		resolve.WithSummary(productSummary),
		resolve.WithLogger[*domain.Product](d.logger),
		resolve.WithHooks[*domain.Product](d.hooks),
	)
	d.categories = resolve.New[*domain.Category](svc.Categories, ui,
		resolve.WithNoun[*domain.Category]("category"),
		resolve.WithPlural[*domain.Category]("categories"),
		resolve.WithPrompt[*domain.Category]("Specify the category id (or part of the category name to search for specific one): > "),
		resolve.WithSummary(categorySummary),
		resolve.WithLogger[*domain.Category](d.logger),
		resolve.WithHooks[*domain.Category](d.hooks),
	)
	d.orders = resolve.New[*domain.Order](svc.Orders, ui,
		resolve.WithNoun[*domain.Order]("order"),
		resolve.WithPrompt[*domain.Order]("Specify the order id (or the client's last name to search for specific one): > "),
		resolve.WithSummary(d.orderSummary),
		resolve.WithLogger[*domain.Order](d.logger),
		resolve.WithHooks[*domain.Order](d.hooks),
	)
	return d
}

// BuildMenu returns the full desk menu.
func (d *Desk) BuildMenu(opts ...menu.Option) *menu.Menu {
	m := menu.New(opts...)

	orders := m.Group("Orders", menu.Root)
	m.Item("New order", d.NewOrder, orders)
	sfo := m.Group("Search for an order", orders)
	m.Item("Get all orders by date span", d.OrdersByDates, sfo)
	m.Item("Get all orders by client", d.OrdersByClient, sfo)
	m.Item("Find all orders by a product", d.OrdersByProduct, sfo)
	m.Item("Show order details", d.ShowOrderDetails, orders)
	m.Item("Delete an order", d.DeleteOrder, orders)

	products := m.Group("Products", menu.Root)
	m.Item("New product", d.NewProduct, products)
	sfp := m.Group("Search for a product", products)
	m.Item("Get a product by name or id", d.FindProduct, sfp)
	m.Item("Get all the products by category", d.ProductsByCategory, sfp)
	m.Item("Edit product", d.EditProduct, products)
	m.Item("Delete product", d.DeleteProduct, products)

	categories := m.Group("Categories", menu.Root)
	m.Item("New category", d.NewCategory, categories)
	m.Item("Show all categories", d.ShowAllCategories, categories)
	m.Item("Edit category", d.EditCategory, categories)
	m.Item("Delete category", d.DeleteCategory, categories)

	clients := m.Group("Clients", menu.Root)
	m.Item("New client", d.NewClient, clients)
	fc := m.Group("Find client", clients)
	m.Item("Find client by last name or id", d.FindClient, fc)
	m.Item("Find client by email", d.FindClientByEmail, fc)
	m.Item("Find client by phone number", d.FindClientByPhone, fc)
	m.Item("Edit client info", d.EditClient, clients)
	m.Item("Delete client", d.DeleteClient, clients)

	m.Exit("Exit")
	return m
}

// confirmRemoval asks before a delete unless confirmation is disabled.
func (d *Desk) confirmRemoval(ctx context.Context, what string) (bool, error) {
	if !d.confirmDelete {
		return true, nil
	}
	ok, err := d.ui.Confirm(ctx, fmt.Sprintf("Delete %s?", what), false)
	if err != nil {
		return false, err
	}
	if !ok {
		d.ui.Println("Nothing was deleted.")
	}
	return ok, nil
}

// removed reports the outcome of a Remove call. A record that vanished in the
// meantime is reported, not returned.
func (d *Desk) removed(err error, noun string, id int) error {
	switch {
	case err == nil:
		d.ui.Printf("%s with [%d] id deleted.\n", capitalize(noun), id)
		return nil
	case errors.Is(err, domain.ErrNotFound):
		d.ui.Printf("%s with [%d] id not found.\n", capitalize(noun), id)
		return nil
	}
	return err
}

// keep returns the new value, or the current one when the input was blank.
func keep(current, input string) string {
	if input == "" {
		return current
	}
	return input
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
