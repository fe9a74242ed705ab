package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entity is implemented by every persisted business record.
// Identity is assigned by the repository on insert.
type Entity interface {
	GetID() int
	SetID(id int)
}

// Client is a customer that places orders.
type Client struct {
	ID        int     `json:"id"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`

	// Orders is populated lazily by ClientService.LoadOrders.
	Orders []*Order `json:"-"`
}

func (c *Client) GetID() int   { return c.ID }
func (c *Client) SetID(id int) { c.ID = id }
func (c *Client) FullName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}

// PhoneNumber returns the phone or an empty string.
func (c *Client) PhoneNumber() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

// Category groups products.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Products is populated lazily by CategoryService.LoadProducts.
	Products []*Product `json:"-"`
}

func (c *Category) GetID() int   { return c.ID }
func (c *Category) SetID(id int) { c.ID = id }

// Product is a sellable item. Category membership is stored on the product side.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryIDs []int           `json:"category_ids,omitempty"`

	// Categories is populated lazily by ProductService.LoadCategories.
	Categories []*Category `json:"-"`
}

func (p *Product) GetID() int   { return p.ID }
func (p *Product) SetID(id int) { p.ID = id }

// HasCategory reports whether the product is linked to the category id.
func (p *Product) HasCategory(id int) bool {
	for _, c := range p.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// AddCategory links the product to a category, ignoring duplicates.
// It returns false when the link already existed.
func (p *Product) AddCategory(c *Category) bool {
	if p.HasCategory(c.ID) {
		return false
	}
	p.CategoryIDs = append(p.CategoryIDs, c.ID)
	p.Categories = append(p.Categories, c)
	return true
}

// RemoveCategory unlinks a category id. It returns false if the product was not linked.
func (p *Product) RemoveCategory(id int) bool {
	for i, c := range p.CategoryIDs {
		if c == id {
			p.CategoryIDs = append(p.CategoryIDs[:i], p.CategoryIDs[i+1:]...)
			return true
		}
	}
	return false
}

// OrderItem is one product line of an order.
// Price is the unit price captured when the order was made.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`

	Product *Product `json:"-"`
}

// Total returns Price * Quantity.
func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a purchase made by a client.
type Order struct {
	ID       int         `json:"id"`
	ClientID int         `json:"client_id"`
	IssuedAt time.Time   `json:"issued_at"`
	Items    []OrderItem `json:"items"`

	// Client is populated by OrderService.LoadDetails.
	Client *Client `json:"-"`
}

func (o *Order) GetID() int   { return o.ID }
func (o *Order) SetID(id int) { o.ID = id }

// Total returns the sum of all item totals.
func (o *Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// HasProduct reports whether any item references the product id.
func (o *Order) HasProduct(id int) bool {
	for _, it := range o.Items {
		if it.ProductID == id {
			return true
		}
	}
	return false
}

// ClientName returns the loaded client's full name or a placeholder with the id.
func (o *Order) ClientName() string {
	if o.Client == nil {
		return fmt.Sprintf("<client %d>", o.ClientID)
	}
	return o.Client.FullName()
}
