package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/storedesk"
	"github.com/aretw0/storedesk/internal/config"
	"github.com/aretw0/storedesk/internal/presentation/tui"
	"github.com/aretw0/storedesk/pkg/catalog"
	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/observability"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ConfigPath string
	Backend    string
	Debug      bool
	Headless   bool

	// In and Out default to Stdin and Stdout.
	In  io.Reader
	Out io.Writer
}

// RunSession executes a single interactive desk session.
func RunSession(opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Backend, opts.Headless)
	if err != nil {
		return err
	}
	logger, err := createLogger(opts.Debug, cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	runErr := runSession(sigCtx, cfg, opts, logger)
	if sigCtx.Signal() != nil && !cfg.Headless {
		fmt.Fprintln(opts.Out)
		printSystemMessage(opts.Out, "Interrupted.")
	}
	return handleExecutionError(runErr)
}

func runSession(ctx context.Context, cfg *config.Config, opts RunOptions, logger *slog.Logger) error {
	sessionID := uuid.NewString()
	logger = logger.With("session_id", sessionID)

	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close backend", "backend", backend.Name, "error", err)
		}
	}()

	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = hooks.Merge(metrics.Hooks())

		metricsCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := observability.Serve(metricsCtx, cfg.Metrics.Addr, observability.NewRouter(reg), logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	appOpts := []storedesk.Option{
		storedesk.WithServices(catalog.New(backend.Repos, catalog.WithLogger(logger))),
		storedesk.WithIO(opts.In, opts.Out),
		storedesk.WithLogger(logger),
		storedesk.WithLifecycleHooks(hooks),
		storedesk.WithDateLayout(cfg.DateLayout),
		storedesk.WithConfirmDelete(cfg.ConfirmDelete),
		storedesk.WithSessionID(sessionID),
	}
	if !cfg.Headless {
		tui.PrintBanner(opts.Out)
		appOpts = append(appOpts, storedesk.WithRenderer(tui.NewRenderer(100)))
	}

	logger.Info("session started", "backend", backend.Name)
	err = storedesk.New(appOpts...).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session failed", "error", err)
	}
	return err
}
