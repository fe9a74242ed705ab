package catalog

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/storedesk/pkg/ports"
)

// Option configures the services built by New.
type Option func(*config)

type config struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the structured logger used for mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock overrides the time source used to stamp new orders.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New builds the four service ports on top of the given repositories.
func New(repos ports.Repositories, opts ...Option) ports.Services {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	clients := &Clients{repos: repos, logger: cfg.logger.With("service", "clients")}
	categories := &Categories{repos: repos, logger: cfg.logger.With("service", "categories")}
	products := &Products{repos: repos, logger: cfg.logger.With("service", "products")}
	orders := &Orders{repos: repos, logger: cfg.logger.With("service", "orders"), now: cfg.now}

	return ports.Services{
		Clients:    clients,
		Categories: categories,
		Products:   products,
		Orders:     orders,
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
