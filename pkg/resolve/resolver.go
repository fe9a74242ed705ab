package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

// UI is the subset of the console the resolver talks to.
type UI interface {
	Line(ctx context.Context, label string) (string, error)
	Choose(ctx context.Context, title string, options []string) (int, error)
	Println(a ...any)
}

// Resolver turns an operator query into a single entity.
// An empty result (zero T with nil error) means "nothing selected".
type Resolver[T any] struct {
	finder  ports.Finder[T]
	ui      UI
	noun    string
	plural  string
	prompt  string
	summary func(T) string
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures a Resolver.
type Option[T any] func(*Resolver[T])

// WithNoun sets the entity name used in messages ("product").
func WithNoun[T any](noun string) Option[T] {
	return func(r *Resolver[T]) {
		r.noun = noun
	}
}

// WithPlural overrides the plural form, which defaults to noun + "s".
func WithPlural[T any](plural string) Option[T] {
	return func(r *Resolver[T]) {
		r.plural = plural
	}
}

// WithPrompt sets the label Select reads the query with.
func WithPrompt[T any](prompt string) Option[T] {
	return func(r *Resolver[T]) {
		r.prompt = prompt
	}
}

// WithSummary sets how candidates are rendered in the disambiguation list.
func WithSummary[T any](fn func(T) string) Option[T] {
	return func(r *Resolver[T]) {
		r.summary = fn
	}
}

// WithLogger sets the logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Resolver[T]) {
		r.logger = logger
	}
}

// WithHooks registers hooks; only OnResolve is used.
func WithHooks[T any](hooks domain.LifecycleHooks) Option[T] {
	return func(r *Resolver[T]) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// New creates a resolver over a finder port.
func New[T any](finder ports.Finder[T], ui UI, opts ...Option[T]) *Resolver[T] {
	r := &Resolver[T]{
		finder:  finder,
		ui:      ui,
		noun:    "entity",
		summary: func(v T) string { return fmt.Sprint(v) },
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.plural == "" {
		r.plural = r.noun + "s"
	}
	if r.prompt == "" {
		r.prompt = fmt.Sprintf("Specify the %s id (or text to search for a specific one): > ", r.noun)
	}
	return r
}

// Noun returns the configured entity name.
func (r *Resolver[T]) Noun() string {
	return r.noun
}

// Select reads a query with the configured prompt and resolves it.
func (r *Resolver[T]) Select(ctx context.Context) (T, error) {
	raw, err := r.ui.Line(ctx, r.prompt)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.Resolve(ctx, raw)
}

// Resolve maps raw to an entity. Input that parses as an integer is always
// looked up as an id; anything else goes through the text search.
func (r *Resolver[T]) Resolve(ctx context.Context, raw string) (T, error) {
	var zero T

	if raw == "" {
		r.ui.Println(fmt.Sprintf("  ---   No data to search for a %s   ---", r.noun))
		r.emit(ctx, "empty", 0, false)
		return zero, nil
	}

	if id, err := strconv.Atoi(raw); err == nil {
		found, err := r.finder.FindByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Debug("no entity with id", "noun", r.noun, "id", id)
			r.emit(ctx, "id", 0, false)
			return zero, nil
		}
		if err != nil {
			return zero, fmt.Errorf("failed to find %s %d: %w", r.noun, id, err)
		}
		r.emit(ctx, "id", 1, true)
		return found, nil
	}

	candidates, err := r.finder.SearchByText(ctx, raw)
	if err != nil {
		return zero, fmt.Errorf("failed to search %s: %w", r.plural, err)
	}
	r.logger.Debug("text search", "noun", r.noun, "query", raw, "candidates", len(candidates))

	switch len(candidates) {
	case 0:
		r.ui.Println(fmt.Sprintf("No such %s found!", r.plural))
		r.emit(ctx, "text", 0, false)
		return zero, nil
	case 1:
		r.emit(ctx, "text", 1, true)
		return candidates[0], nil
	}

	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = r.summary(c)
	}
	idx, err := r.ui.Choose(ctx, fmt.Sprintf("Several %s match %q:", r.plural, raw), options)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(candidates) {
		return zero, fmt.Errorf("choice %d out of range", idx)
	}
	r.emit(ctx, "text", len(candidates), true)
	return candidates[idx], nil
}

func (r *Resolver[T]) emit(ctx context.Context, path string, candidates int, found bool) {
	if r.hooks.OnResolve == nil {
		return
	}
	r.hooks.OnResolve(ctx, &domain.ResolveEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventResolve,
		},
		Noun:       r.noun,
		Path:       path,
		Candidates: candidates,
		Found:      found,
	})
}
