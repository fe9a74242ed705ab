package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/storedesk/internal/config"
	"github.com/aretw0/storedesk/pkg/catalog"
	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

// Fixture is a YAML document of demo records. Records reference each other by name
// (categories, products) or email (clients) so fixtures stay readable.
type Fixture struct {
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
	Clients    []ClientFixture   `yaml:"clients"`
	Orders     []OrderFixture    `yaml:"orders"`
}

type CategoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ProductFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Categories  []string `yaml:"categories"`
}

type ClientFixture struct {
	LastName  string `yaml:"last_name"`
	FirstName string `yaml:"first_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
}

type OrderFixture struct {
	Client   string        `yaml:"client"`
	IssuedAt string        `yaml:"issued_at"`
	Items    []ItemFixture `yaml:"items"`
}

type ItemFixture struct {
	Product  string `yaml:"product"`
	Quantity int    `yaml:"quantity"`
}

// SeedSummary counts the records created by Seed.
type SeedSummary struct {
	Categories, Products, Clients, Orders int
}

func (s SeedSummary) String() string {
	return fmt.Sprintf("%d categories, %d products, %d clients, %d orders",
		s.Categories, s.Products, s.Clients, s.Orders)
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &fx, nil
}

// Seed inserts the fixture records through the service ports.
// It stops at the first invalid record; records inserted before it are kept.
func Seed(ctx context.Context, svc ports.Services, fx *Fixture) (SeedSummary, error) {
	var sum SeedSummary

	categories := make(map[string]*domain.Category)
	for _, cf := range fx.Categories {
		if cf.Name == "" {
			return sum, fmt.Errorf("category #%d: name is empty", sum.Categories+1)
		}
		inUse, err := svc.Categories.IsNameInUse(ctx, cf.Name)
		if err != nil {
			return sum, err
		}
		if inUse {
			return sum, fmt.Errorf("category %q already exists", cf.Name)
		}
		c, err := svc.Categories.Add(ctx, &domain.Category{Name: cf.Name, Description: cf.Description})
		if err != nil {
			return sum, err
		}
		categories[c.Name] = c
		sum.Categories++
	}

	products := make(map[string]*domain.Product)
	for _, pf := range fx.Products {
		price, err := decimal.NewFromString(pf.Price)
		if err != nil {
			return sum, fmt.Errorf("product %q: invalid price %q: %w", pf.Name, pf.Price, err)
		}
		if price.IsNegative() {
			return sum, fmt.Errorf("product %q: price can not be negative", pf.Name)
		}
		p := &domain.Product{Name: pf.Name, Description: pf.Description, Price: price}
		for _, name := range pf.Categories {
			c, ok := categories[name]
			if !ok {
				return sum, fmt.Errorf("product %q: unknown category %q", pf.Name, name)
			}
			p.AddCategory(c)
		}
		if _, err := svc.Products.Add(ctx, p); err != nil {
			return sum, err
		}
		products[p.Name] = p
		sum.Products++
	}

	clients := make(map[string]*domain.Client)
	for _, cf := range fx.Clients {
		if cf.Email == "" {
			return sum, fmt.Errorf("client %q: email is empty", cf.LastName)
		}
		inUse, err := svc.Clients.IsEmailInUse(ctx, cf.Email)
		if err != nil {
			return sum, err
		}
		if inUse {
			return sum, fmt.Errorf("client %q: email %s is already in use", cf.LastName, cf.Email)
		}
		c := &domain.Client{LastName: cf.LastName, FirstName: cf.FirstName, Email: cf.Email}
		if cf.Phone != "" {
			phone := cf.Phone
			c.Phone = &phone
		}
		if _, err := svc.Clients.Add(ctx, c); err != nil {
			return sum, err
		}
		clients[c.Email] = c
		sum.Clients++
	}

	for i, of := range fx.Orders {
		c, ok := clients[of.Client]
		if !ok {
			return sum, fmt.Errorf("order #%d: unknown client %q", i+1, of.Client)
		}
		o := &domain.Order{ClientID: c.ID}
		if of.IssuedAt != "" {
			at, err := time.Parse(time.DateOnly, of.IssuedAt)
			if err != nil {
				return sum, fmt.Errorf("order #%d: invalid issued_at %q: %w", i+1, of.IssuedAt, err)
			}
			o.IssuedAt = at
		}
		for _, it := range of.Items {
			p, ok := products[it.Product]
			if !ok {
				return sum, fmt.Errorf("order #%d: unknown product %q", i+1, it.Product)
			}
			o.Items = append(o.Items, domain.OrderItem{ProductID: p.ID, Quantity: it.Quantity, Price: p.Price})
		}
		if _, err := svc.Orders.Add(ctx, o); err != nil {
			return sum, fmt.Errorf("order #%d: %w", i+1, err)
		}
		sum.Orders++
	}
	return sum, nil
}

// SeedOptions configures the seed command.
type SeedOptions struct {
	ConfigPath  string
	Backend     string
	Debug       bool
	FixturePath string
	Out         io.Writer
}

// RunSeed loads a fixture into the configured backend.
func RunSeed(opts SeedOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Backend, true)
	if err != nil {
		return err
	}
	logger, err := createLogger(opts.Debug, cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	fx, err := LoadFixture(opts.FixturePath)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	backend, err := OpenBackend(sigCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	if backend.Name == config.BackendMemory {
		logger.Warn("seeding the in-memory backend; data is lost when the command exits")
	}
	sum, err := Seed(sigCtx, catalog.New(backend.Repos, catalog.WithLogger(logger)), fx)
	if err != nil {
		return handleExecutionError(fmt.Errorf("seed stopped after %s: %w", sum, err))
	}
	printSystemMessage(opts.Out, "Seeded %s into %s.", sum, backend.Name)
	return nil
}
