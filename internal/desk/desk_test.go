package desk_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/storedesk/internal/desk"
	"github.com/aretw0/storedesk/pkg/adapters/memory"
	"github.com/aretw0/storedesk/pkg/catalog"
	"github.com/aretw0/storedesk/pkg/console"
	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/menu"
	"github.com/aretw0/storedesk/pkg/ports"
	"github.com/aretw0/storedesk/pkg/runner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// countingClients records Update calls.
type countingClients struct {
	ports.ClientService
	updates int
}

func (c *countingClients) Update(ctx context.Context, cl *domain.Client) error {
	c.updates++
	return c.ClientService.Update(ctx, cl)
}

// preloadedClients returns clients whose orders are already populated and counts LoadOrders calls.
type preloadedClients struct {
	ports.ClientService
	loads int
}

func (c *preloadedClients) FindByID(ctx context.Context, id int) (*domain.Client, error) {
	cl, err := c.ClientService.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cl.Orders = []*domain.Order{{ID: 99, ClientID: id}}
	return cl, nil
}

func (c *preloadedClients) LoadOrders(ctx context.Context, cl *domain.Client) error {
	c.loads++
	return c.ClientService.LoadOrders(ctx, cl)
}

type fixture struct {
	svc ports.Services
	out *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		svc: catalog.New(memory.NewRepositories(), catalog.WithClock(func() time.Time { return fixedNow })),
		out: &bytes.Buffer{},
	}
}

func (f *fixture) desk(script string, opts ...desk.Option) (*desk.Desk, *console.Console) {
	f.out.Reset()
	ui := console.New(strings.NewReader(script), f.out)
	return desk.New(f.svc, ui, opts...), ui
}

func (f *fixture) client(t *testing.T, last, first, email string) *domain.Client {
	t.Helper()
	c, err := f.svc.Clients.Add(context.Background(), &domain.Client{LastName: last, FirstName: first, Email: email})
	require.NoError(t, err)
	return c
}

func (f *fixture) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := f.svc.Categories.Add(context.Background(), &domain.Category{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name, price string, cats ...*domain.Category) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Price: decimal.RequireFromString(price)}
	for _, c := range cats {
		p.AddCategory(c)
	}
	p, err := f.svc.Products.Add(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestBuildMenu(t *testing.T) {
	d, _ := newFixture(t).desk("")
	m := d.BuildMenu()

	require.NoError(t, m.Validate())

	var top []string
	for _, id := range m.Children(menu.Root) {
		top = append(top, m.Label(id))
	}
	assert.Equal(t, []string{"Orders", "Products", "Categories", "Clients", "Exit"}, top)

	leaves := 0
	m.Walk(func(_ menu.NodeID, _ int, isLeaf bool) {
		if isLeaf {
			leaves++
		}
	})
	assert.Equal(t, 22, leaves)
}

func TestSession_MissingEmailIsReportedAndMenuShownAgain(t *testing.T) {
	f := newFixture(t)
	// Clients > New client, empty email, acknowledge, Exit.
	d, ui := f.desk("4\n1\nSmith\nJohn\n\n\n5\n")

	r := runner.NewRunner(d.BuildMenu(), ui)
	require.NoError(t, r.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Email can not be empty")
	assert.Equal(t, 2, strings.Count(out, menu.DefaultTitle))
	assert.Contains(t, out, console.PauseMessage)

	clients, err := f.svc.Clients.SearchByText(context.Background(), "Smith")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestSession_CreateClientThroughMenu(t *testing.T) {
	f := newFixture(t)
	d, ui := f.desk("4\n1\nSmith\nJohn\njohn@example.com\n555-0100\n\n5\n")

	require.NoError(t, runner.NewRunner(d.BuildMenu(), ui).Run(context.Background()))

	c, err := f.svc.Clients.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Smith John", c.FullName())
	assert.Equal(t, "555-0100", c.PhoneNumber())
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"Last Name", "\n", "Last name can not be empty"},
		{"First Name", "Smith\n\n", "First name can not be empty"},
		{"Email", "Smith\nJohn\n\n", "Email can not be empty"},
		{"Email In Use", "Doe\nJane\nTAKEN@example.com\n", "This email is already in use"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.client(t, "Other", "Person", "taken@example.com")
			d, _ := f.desk(tt.script)

			err := d.NewClient(context.Background())
			require.Error(t, err)
			assert.True(t, domain.IsInputError(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNewClient_BlankPhoneIsNil(t *testing.T) {
	f := newFixture(t)
	d, _ := f.desk("Smith\nJohn\njohn@example.com\n\n")

	require.NoError(t, d.NewClient(context.Background()))
	c, err := f.svc.Clients.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, c.Phone)
}

func TestEditClient_BlankInputLeavesClientUnchanged(t *testing.T) {
	f := newFixture(t)
	orig := f.client(t, "Smith", "John", "john@example.com")
	counting := &countingClients{ClientService: f.svc.Clients}
	f.svc.Clients = counting

	d, _ := f.desk("1\n\n\n\n\n")
	require.NoError(t, d.EditClient(context.Background()))

	assert.Zero(t, counting.updates)
	assert.Contains(t, f.out.String(), "Nothing changed.")
	got, err := f.svc.Clients.FindByID(context.Background(), orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.LastName, got.LastName)
	assert.Equal(t, orig.FirstName, got.FirstName)
	assert.Equal(t, orig.Email, got.Email)
	assert.Nil(t, got.Phone)
}

func TestEditClient_ChangesFields(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")
	d, _ := f.desk("Smith\n\nJack\n\n555\n")

	require.NoError(t, d.EditClient(context.Background()))
	got, err := f.svc.Clients.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Smith Jack", got.FullName())
	assert.Equal(t, "555", got.PhoneNumber())
	assert.Equal(t, "john@example.com", got.Email)
}

func TestEditClient_EmailMustStayUnique(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")
	f.client(t, "Doe", "Jane", "jane@example.com")
	d, _ := f.desk("1\n\n\njane@example.com\n\n")

	err := d.EditClient(context.Background())
	require.Error(t, err)
	assert.Equal(t, "This email is already in use", err.Error())
}

func TestEditProduct_BlankInputLeavesProductUnchanged(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Hammer", "12.50")
	d, _ := f.desk("1\n\n\n\n")

	require.NoError(t, d.EditProduct(context.Background()))
	got, err := f.svc.Products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Contains(t, f.out.String(), "Nothing changed.")
}

func TestEditProduct_PriceRetry(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Hammer", "12.50")
	d, _ := f.desk("1\nMallet\n\ncheap\n-1\n15\n")

	require.NoError(t, d.EditProduct(context.Background()))
	got, err := f.svc.Products.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mallet", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(15)))
	assert.Contains(t, f.out.String(), "Updating is finished!")
}

func TestNewProduct_WithCategories(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Tools")
	// Tools by text, then again by id; the duplicate is ignored.
	d, _ := f.desk("Hammer\nHeavy\n9.99\ny\nTools\ny\n1\nn\n")

	require.NoError(t, d.NewProduct(context.Background()))
	p, err := f.svc.Products.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, p.CategoryIDs)
	assert.Contains(t, f.out.String(), "[Hammer] has been assigned the category [Tools]")
	assert.Contains(t, f.out.String(), "[Hammer] already has the category [Tools]")
}

func TestNewProduct_Validation(t *testing.T) {
	f := newFixture(t)

	d, _ := f.desk("\n")
	err := d.NewProduct(context.Background())
	assert.Equal(t, "Product name can not be empty", err.Error())

	d, _ = f.desk("Hammer\n\n-2\n")
	err = d.NewProduct(context.Background())
	assert.Equal(t, "Price can not be negative", err.Error())
}

func TestFindProduct_ShowsCategories(t *testing.T) {
	f := newFixture(t)
	tools := f.category(t, "Tools")
	f.product(t, "Hammer", "10", tools)
	f.product(t, "Nail", "0.10")

	d, _ := f.desk("hammer\n")
	require.NoError(t, d.FindProduct(context.Background()))
	assert.Contains(t, f.out.String(), "Tools")

	d, _ = f.desk("2\n")
	require.NoError(t, d.FindProduct(context.Background()))
	assert.Contains(t, f.out.String(), "<NO CATEGORIES>")
}

func TestProductsByCategory(t *testing.T) {
	f := newFixture(t)
	tools := f.category(t, "Tools")
	f.category(t, "Garden")
	f.product(t, "Hammer", "10", tools)

	d, _ := f.desk("1\n")
	require.NoError(t, d.ProductsByCategory(context.Background()))
	assert.Contains(t, f.out.String(), "Hammer")

	d, _ = f.desk("2\n")
	require.NoError(t, d.ProductsByCategory(context.Background()))
	assert.Contains(t, f.out.String(), "There are no products in [Garden].")
}

func TestNewCategory_NameMustBeUnique(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Tools")

	d, _ := f.desk("tools\n")
	err := d.NewCategory(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))

	d, _ = f.desk("Garden\nOutdoor things\n")
	require.NoError(t, d.NewCategory(context.Background()))
	all, err := f.svc.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEditCategory(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Tools")
	f.category(t, "Garden")

	d, _ := f.desk("1\ngarden\n\n")
	err := d.EditCategory(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))

	d, _ = f.desk("1\nHand tools\nSmall tools\n")
	require.NoError(t, d.EditCategory(context.Background()))
	got, err := f.svc.Categories.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Hand tools", got.Name)
	assert.Equal(t, "Small tools", got.Description)
}

func TestShowAllCategories(t *testing.T) {
	f := newFixture(t)
	d, _ := f.desk("")
	require.NoError(t, d.ShowAllCategories(context.Background()))
	assert.Contains(t, f.out.String(), "There are no categories yet.")

	f.category(t, "Tools")
	d, _ = f.desk("")
	require.NoError(t, d.ShowAllCategories(context.Background()))
	assert.Contains(t, f.out.String(), "| 1 | Tools | - |")
}

func TestNewOrder(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")
	f.product(t, "Hammer", "10.00")
	f.product(t, "Nail", "0.25")

	// Client by last name, Hammer x2, more, Nail x0 (rejected), more, Nail x10, done.
	d, _ := f.desk("smith\n1\n2\ny\nnail\n0\ny\n2\n10\nn\n")
	require.NoError(t, d.NewOrder(context.Background()))

	o, err := f.svc.Orders.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 1, o.ClientID)
	assert.True(t, fixedNow.Equal(o.IssuedAt))
	assert.True(t, o.Total().Equal(decimal.RequireFromString("22.50")))
	assert.Contains(t, f.out.String(), "Quantity must be positive")
	assert.Contains(t, f.out.String(), "Smith John")
}

func TestNewOrder_PriceIsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")
	p := f.product(t, "Hammer", "10.00")

	d, _ := f.desk("1\n1\n1\nn\n")
	require.NoError(t, d.NewOrder(context.Background()))

	p.Price = decimal.NewFromInt(99)
	require.NoError(t, f.svc.Products.Update(context.Background(), p))

	o, err := f.svc.Orders.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestNewOrder_InputErrors(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")

	d, _ := f.desk("\n")
	err := d.NewOrder(context.Background())
	assert.Equal(t, "Unable to create an order without a client info", err.Error())

	d, _ = f.desk("1\n\nn\n")
	err = d.NewOrder(context.Background())
	assert.Equal(t, "Unable to make an order without any products in it", err.Error())
}

func TestOrderQueries(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "Smith", "John", "john@example.com")
	p := f.product(t, "Hammer", "10.00")
	_, err := f.svc.Orders.Add(context.Background(), &domain.Order{
		ClientID: c.ID,
		Items:    []domain.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}},
	})
	require.NoError(t, err)

	t.Run("By Dates", func(t *testing.T) {
		d, _ := f.desk("2024-03-14\n2024-03-16\n")
		require.NoError(t, d.OrdersByDates(context.Background()))
		assert.Contains(t, f.out.String(), "Smith John")
	})

	t.Run("By Dates Reversed", func(t *testing.T) {
		d, _ := f.desk("2024-03-16\n2024-03-14\n")
		err := d.OrdersByDates(context.Background())
		assert.True(t, domain.IsInputError(err))
	})

	t.Run("By Client", func(t *testing.T) {
		d, _ := f.desk("1\n")
		require.NoError(t, d.OrdersByClient(context.Background()))
		assert.Contains(t, f.out.String(), "Orders of Smith John")
	})

	t.Run("By Product Without Orders", func(t *testing.T) {
		f.product(t, "Saw", "20")
		d, _ := f.desk("saw\n")
		require.NoError(t, d.OrdersByProduct(context.Background()))
		assert.Contains(t, f.out.String(), "Nothing found.")
	})

	t.Run("Details", func(t *testing.T) {
		d, _ := f.desk("1\n")
		require.NoError(t, d.ShowOrderDetails(context.Background()))
		out := f.out.String()
		assert.Contains(t, out, "Order 1")
		assert.Contains(t, out, "Hammer")
		assert.Contains(t, out, "10.00")
	})
}

func TestDeleteClient_Confirmation(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Smith", "John", "john@example.com")

	d, _ := f.desk("1\nn\n")
	require.NoError(t, d.DeleteClient(context.Background()))
	assert.Contains(t, f.out.String(), "Nothing was deleted.")
	_, err := f.svc.Clients.FindByID(context.Background(), 1)
	require.NoError(t, err)

	d, _ = f.desk("1\ny\n")
	require.NoError(t, d.DeleteClient(context.Background()))
	assert.Contains(t, f.out.String(), "Client with [1] id deleted.")
	_, err = f.svc.Clients.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_WithoutConfirmation(t *testing.T) {
	f := newFixture(t)
	tools := f.category(t, "Tools")
	f.product(t, "Hammer", "10", tools)

	d, _ := f.desk("1\n1\n", desk.WithConfirmDelete(false))
	require.NoError(t, d.DeleteCategory(context.Background()))
	require.NoError(t, d.DeleteProduct(context.Background()))

	_, err := f.svc.Categories.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.Products.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NothingSelected(t *testing.T) {
	f := newFixture(t)
	d, _ := f.desk("\n")

	require.NoError(t, d.DeleteOrder(context.Background()))
	assert.Contains(t, f.out.String(), "No order found")
}

func TestFindClientByEmailAndPhone(t *testing.T) {
	f := newFixture(t)
	phone := "555-0100"
	_, err := f.svc.Clients.Add(context.Background(), &domain.Client{
		LastName: "Smith", FirstName: "John", Email: "john@example.com", Phone: &phone,
	})
	require.NoError(t, err)

	d, _ := f.desk("john@example.com\n")
	require.NoError(t, d.FindClientByEmail(context.Background()))
	assert.Contains(t, f.out.String(), "There is 1 client:")

	d, _ = f.desk("nobody@example.com\n")
	require.NoError(t, d.FindClientByEmail(context.Background()))
	assert.Contains(t, f.out.String(), "There isn't any client with this email.")

	d, _ = f.desk("555-0100\n")
	require.NoError(t, d.FindClientByPhone(context.Background()))
	assert.Contains(t, f.out.String(), "Smith John")

	d, _ = f.desk("\n")
	require.NoError(t, d.FindClientByPhone(context.Background()))
	assert.Contains(t, f.out.String(), "No data to search for a client")
}

func TestFindClient_SkipsLoadWhenOrdersPresent(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "Smith", "John", "john@example.com")
	preloaded := &preloadedClients{ClientService: f.svc.Clients}
	f.svc.Clients = preloaded

	d, _ := f.desk(fmt.Sprintf("%d\n", c.ID))
	require.NoError(t, d.FindClient(context.Background()))

	assert.Zero(t, preloaded.loads)
	assert.Contains(t, f.out.String(), "john@example.com")
}
