package storedesk

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/storedesk/internal/desk"
	"github.com/aretw0/storedesk/pkg/adapters/memory"
	"github.com/aretw0/storedesk/pkg/catalog"
	"github.com/aretw0/storedesk/pkg/console"
	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/menu"
	"github.com/aretw0/storedesk/pkg/ports"
	"github.com/aretw0/storedesk/pkg/runner"
)

// App is the high-level entry point: it wires services, console, handlers,
// menu and session runner together.
type App struct {
	services      ports.Services
	in            io.Reader
	out           io.Writer
	logger        *slog.Logger
	hooks         domain.LifecycleHooks
	renderer      console.ContentRenderer
	dateLayout    string
	confirmDelete bool
	sessionID     string
	pause         runner.PauseGate
	pauseSet      bool

	ui   *console.Console
	menu *menu.Menu
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithServices sets the service ports. Defaults to in-memory storage.
func WithServices(svc ports.Services) Option {
	return func(a *App) {
		a.services = svc
	}
}

// WithIO sets the operator input and output. Defaults to Stdin and Stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// WithRenderer sets the Markdown renderer used for reports.
func WithRenderer(r console.ContentRenderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithDateLayout sets the layout used to read and print dates.
func WithDateLayout(layout string) Option {
	return func(a *App) {
		a.dateLayout = layout
	}
}

// WithConfirmDelete toggles the confirmation asked before deletes.
func WithConfirmDelete(confirm bool) Option {
	return func(a *App) {
		a.confirmDelete = confirm
	}
}

// WithSessionID tags session events and logs.
func WithSessionID(id string) Option {
	return func(a *App) {
		a.sessionID = id
	}
}

// WithPauseGate replaces the "press any key" gate between actions. Nil disables it.
func WithPauseGate(gate runner.PauseGate) Option {
	return func(a *App) {
		a.pause = gate
		a.pauseSet = true
	}
}

// New creates an App. Without WithServices it keeps everything in memory.
func New(opts ...Option) *App {
	a := &App{
		in:            os.Stdin,
		out:           os.Stdout,
		logger:        slog.New(slog.DiscardHandler),
		dateLayout:    console.DefaultDateLayout,
		confirmDelete: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.services.Clients == nil {
		a.services = catalog.New(memory.NewRepositories(), catalog.WithLogger(a.logger))
	}

	consoleOpts := []console.Option{console.WithDateLayout(a.dateLayout)}
	if a.renderer != nil {
		consoleOpts = append(consoleOpts, console.WithRenderer(a.renderer))
	}
	a.ui = console.New(a.in, a.out, consoleOpts...)

	d := desk.New(a.services, a.ui,
		desk.WithConfirmDelete(a.confirmDelete),
		desk.WithLogger(a.logger),
		desk.WithHooks(a.hooks),
	)
	a.menu = d.BuildMenu()
	return a
}

// Services returns the service ports the App works on.
func (a *App) Services() ports.Services {
	return a.services
}

// Menu returns the desk menu.
func (a *App) Menu() *menu.Menu {
	return a.menu
}

// Run drives one interactive session until Exit, end of input or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	if err := a.menu.Validate(); err != nil {
		return err
	}
	opts := []runner.Option{
		runner.WithLogger(a.logger),
		runner.WithHooks(a.hooks),
		runner.WithSessionID(a.sessionID),
	}
	if a.pauseSet {
		opts = append(opts, runner.WithPauseGate(a.pause))
	}
	return runner.NewRunner(a.menu, a.ui, opts...).Run(ctx)
}
