package desk

import (
	"context"
	"fmt"

	"github.com/aretw0/storedesk/pkg/domain"
)

// NewOrder picks a client, collects product lines and stores the order.
func (d *Desk) NewOrder(ctx context.Context) error {
	d.ui.Println("   --- Making a new order ---")
	client, err := d.clients.Select(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.Inputf("Unable to create an order without a client info")
	}

	d.ui.Println("Add products to the order:")
	var items []domain.OrderItem
	for {
		product, err := d.products.Select(ctx)
		if err != nil {
			return err
		}
		if product != nil {
			qty, err := d.ui.Int(ctx, "Quantity > ")
			if err != nil {
				return err
			}
			if qty > 0 {
				items = append(items, domain.OrderItem{
					ProductID: product.ID,
					Quantity:  qty,
					Price:     product.Price,
					Product:   product,
				})
			} else {
				d.ui.Warn("Quantity must be positive, the product was not added")
			}
		}

		more, err := d.ui.Confirm(ctx, "Add more products?", false)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	if len(items) == 0 {
		return domain.Inputf("Unable to make an order without any products in it")
	}

	order, err := d.svc.Orders.Add(ctx, &domain.Order{ClientID: client.ID, Items: items, Client: client})
	if err != nil {
		return err
	}
	d.ui.Render(details("Added new order",
		"ID", fmt.Sprint(order.ID),
		"Date", d.formatTime(order),
		"Client", client.FullName(),
		"Total", order.Total().StringFixed(2),
	))
	return nil
}

// ShowOrderDetails prints the header and the items of one order.
func (d *Desk) ShowOrderDetails(ctx context.Context) error {
	order, err := d.orders.Select(ctx)
	if err != nil || order == nil {
		return err
	}
	if order.Client == nil {
		if err := d.svc.Orders.LoadDetails(ctx, order); err != nil {
			return err
		}
	}

	d.ui.Render(details(fmt.Sprintf("Order %d", order.ID),
		"Client", order.ClientName(),
		"Issue date", d.formatTime(order),
		"Total", order.Total().StringFixed(2),
	))
	if len(order.Items) == 0 {
		d.ui.Println("No products in the order")
		return nil
	}

	t := newTable("", "Product", "Quantity", "Price", "Total")
	for _, it := range order.Items {
		name := fmt.Sprintf("<product %d>", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		t.add(name, it.Quantity, it.Price.StringFixed(2), it.Total().StringFixed(2))
	}
	d.ui.Render(t.String())
	return nil
}

// OrdersByDates lists orders issued between two dates, both inclusive.
func (d *Desk) OrdersByDates(ctx context.Context) error {
	from, err := d.ui.Date(ctx, "Input start date: ")
	if err != nil {
		return err
	}
	to, err := d.ui.Date(ctx, "Input end date: ")
	if err != nil {
		return err
	}
	if to.Before(from) {
		return domain.Inputf("The end date can not be before the start date")
	}
	// The end date covers the whole day.
	to = to.AddDate(0, 0, 1).Add(-1)

	orders, err := d.svc.Orders.FindByDateRange(ctx, from, to)
	if err != nil {
		return err
	}
	d.listOrders("All the orders made between specified dates", orders)
	return nil
}

// OrdersByClient lists the orders of a resolved client.
func (d *Desk) OrdersByClient(ctx context.Context) error {
	client, err := d.clients.Select(ctx)
	if err != nil || client == nil {
		return err
	}
	orders, err := d.svc.Orders.FindByClient(ctx, client.ID)
	if err != nil {
		return err
	}
	d.listOrders(fmt.Sprintf("Orders of %s", client.FullName()), orders)
	return nil
}

// OrdersByProduct lists the orders containing a resolved product.
func (d *Desk) OrdersByProduct(ctx context.Context) error {
	product, err := d.products.Select(ctx)
	if err != nil || product == nil {
		return err
	}
	orders, err := d.svc.Orders.FindByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	d.listOrders(fmt.Sprintf("Orders with %s", product.Name), orders)
	return nil
}

// DeleteOrder removes a resolved order.
func (d *Desk) DeleteOrder(ctx context.Context) error {
	order, err := d.orders.Select(ctx)
	if err != nil {
		return err
	}
	if order == nil {
		d.ui.Println("No order found")
		return nil
	}
	ok, err := d.confirmRemoval(ctx, fmt.Sprintf("order %d", order.ID))
	if err != nil || !ok {
		return err
	}
	return d.removed(d.svc.Orders.Remove(ctx, order), "order", order.ID)
}

func (d *Desk) listOrders(title string, orders []*domain.Order) {
	if len(orders) == 0 {
		d.ui.Println("Nothing found.")
		return
	}
	t := newTable(title, "Id", "Client", "Issued", "Items", "Total")
	for _, o := range orders {
		t.add(o.ID, o.ClientName(), d.formatTime(o), len(o.Items), o.Total().StringFixed(2))
	}
	d.ui.Render(t.String())
}
