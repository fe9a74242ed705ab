package desk

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/storedesk/pkg/domain"
)

// NewClient asks for the mandatory names and a unique email, then an optional phone.
func (d *Desk) NewClient(ctx context.Context) error {
	d.ui.Println("   --- Adding a new client ---")
	lastName, err := d.ui.Line(ctx, "Last name: ")
	if err != nil {
		return err
	}
	if lastName == "" {
		return domain.Inputf("Last name can not be empty")
	}
	firstName, err := d.ui.Line(ctx, "First name: ")
	if err != nil {
		return err
	}
	if firstName == "" {
		return domain.Inputf("First name can not be empty")
	}
	email, err := d.ui.Line(ctx, "Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return domain.Inputf("Email can not be empty")
	}
	if err := d.ensureEmail(ctx, email); err != nil {
		return err
	}
	phone, err := d.ui.Line(ctx, "Phone: ")
	if err != nil {
		return err
	}

	client := &domain.Client{LastName: lastName, FirstName: firstName, Email: email}
	if phone != "" {
		client.Phone = &phone
	}
	if _, err := d.svc.Clients.Add(ctx, client); err != nil {
		return err
	}
	d.ui.Printf("Client [%s] added with id %d.\n", client.FullName(), client.ID)
	return nil
}

// FindClient resolves a client by id or last name and prints it.
func (d *Desk) FindClient(ctx context.Context) error {
	client, err := d.clients.Select(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		d.ui.Println("There isn't any client with this last name or id.")
		return nil
	}
	if len(client.Orders) == 0 {
		if err := d.svc.Clients.LoadOrders(ctx, client); err != nil {
			return err
		}
	}
	d.ui.Render(details(fmt.Sprintf("Client %d", client.ID),
		"Name", client.FullName(),
		"Email", client.Email,
		"Phone", orDash(client.PhoneNumber()),
		"Orders", fmt.Sprint(len(client.Orders)),
	))
	return nil
}

// FindClientByEmail lists clients with exactly this email.
func (d *Desk) FindClientByEmail(ctx context.Context) error {
	email, err := d.ui.Line(ctx, "Enter email: ")
	if err != nil {
		return err
	}
	if email == "" {
		d.ui.Println("  ---   No data to search for a client   ---")
		return nil
	}
	clients, err := d.svc.Clients.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		d.ui.Println("There isn't any client with this email.")
		return nil
	}
	d.listClients(clients)
	return nil
}

// FindClientByPhone lists clients with exactly this phone.
func (d *Desk) FindClientByPhone(ctx context.Context) error {
	phone, err := d.ui.Line(ctx, "Enter phone: ")
	if err != nil {
		return err
	}
	if phone == "" {
		d.ui.Println("  ---   No data to search for a client   ---")
		return nil
	}
	clients, err := d.svc.Clients.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		d.ui.Println("There isn't any client with this phone.")
		return nil
	}
	d.listClients(clients)
	return nil
}

// EditClient prompts for every field; blank input keeps the current value.
func (d *Desk) EditClient(ctx context.Context) error {
	client, err := d.clients.Select(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		d.ui.Println("There isn't any client to edit.")
		return nil
	}

	d.ui.Printf("Edit client <%s> (leave blank to keep the current value):\n", client.FullName())
	var inputs [4]string
	labels := [4]string{
		fmt.Sprintf("Last name [%s]: ", client.LastName),
		fmt.Sprintf("First name [%s]: ", client.FirstName),
		fmt.Sprintf("Email [%s]: ", client.Email),
		fmt.Sprintf("Phone [%s]: ", client.PhoneNumber()),
	}
	for i, label := range labels {
		if inputs[i], err = d.ui.Line(ctx, label); err != nil {
			return err
		}
	}

	changed := *client
	changed.LastName = keep(client.LastName, inputs[0])
	changed.FirstName = keep(client.FirstName, inputs[1])
	changed.Email = keep(client.Email, inputs[2])
	if inputs[3] != "" {
		phone := inputs[3]
		changed.Phone = &phone
	}
	if changed.LastName == client.LastName && changed.FirstName == client.FirstName &&
		changed.Email == client.Email && changed.PhoneNumber() == client.PhoneNumber() {
		d.ui.Println("Nothing changed.")
		return nil
	}
	if !strings.EqualFold(changed.Email, client.Email) {
		if err := d.ensureEmail(ctx, changed.Email); err != nil {
			return err
		}
	}

	if err := d.svc.Clients.Update(ctx, &changed); err != nil {
		return err
	}
	*client = changed
	d.ui.Println("Updating is finished!")
	return nil
}

// DeleteClient removes a resolved client together with their orders.
func (d *Desk) DeleteClient(ctx context.Context) error {
	client, err := d.clients.Select(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		d.ui.Println("There isn't any client with this last name or id.")
		return nil
	}
	ok, err := d.confirmRemoval(ctx, fmt.Sprintf("client [%s] and all their orders", client.FullName()))
	if err != nil || !ok {
		return err
	}
	return d.removed(d.svc.Clients.Remove(ctx, client), "client", client.ID)
}

func (d *Desk) ensureEmail(ctx context.Context, email string) error {
	inUse, err := d.svc.Clients.IsEmailInUse(ctx, email)
	if err != nil {
		return err
	}
	if inUse {
		return domain.Inputf("This email is already in use")
	}
	return nil
}

func (d *Desk) listClients(clients []*domain.Client) {
	if len(clients) == 1 {
		d.ui.Println("There is 1 client:")
	} else {
		d.ui.Printf("There are %d clients:\n", len(clients))
	}
	t := newTable("", "Id", "Name", "Email", "Phone")
	for _, c := range clients {
		t.add(c.ID, c.FullName(), c.Email, orDash(c.PhoneNumber()))
	}
	d.ui.Render(t.String())
}
