package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/menu"
)

// State is the lifecycle state of a Runner.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Terminal is what the runner needs from the console.
type Terminal interface {
	menu.Chooser
	Println(a ...any)
}

// Pauser is implemented by terminals that can wait for an acknowledgement.
type Pauser interface {
	Pause(ctx context.Context) error
}

// PauseGate runs after every action that did not stop the session.
type PauseGate func(ctx context.Context) error

// Runner drives the interaction loop: present the menu, run the chosen action,
// report operator mistakes and wait before presenting the menu again.
type Runner struct {
	menu      *menu.Menu
	term      Terminal
	pause     PauseGate
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	sessionID string
	state     State
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Repeated calls are merged.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithSessionID tags events and log lines with id.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.sessionID = id
	}
}

// WithPauseGate replaces the pause that follows each action. A nil gate disables it.
func WithPauseGate(gate PauseGate) Option {
	return func(r *Runner) {
		r.pause = gate
	}
}

// NewRunner creates a runner for m. If term implements Pauser, its Pause is the
// default pause gate.
func NewRunner(m *menu.Menu, term Terminal, opts ...Option) *Runner {
	r := &Runner{
		menu:   m,
		term:   term,
		logger: slog.New(slog.DiscardHandler),
	}
	if p, ok := term.(Pauser); ok {
		r.pause = p.Pause
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run loops until the exit action is chosen, input ends or ctx is cancelled.
// It returns nil on exit and on end of input, ctx.Err() on cancellation, and
// the error of any action that failed for a reason other than bad input.
func (r *Runner) Run(ctx context.Context) error {
	r.state = StateRunning
	logger := r.logger.With("session_id", r.sessionID)
	logger.Debug("session started")

	var (
		actions int
		runErr  error
	)
	for r.state == StateRunning {
		cmd, err := r.menu.Show(ctx, r.term)
		if err != nil {
			runErr = r.stop(ctx, err)
			break
		}

		actions++
		err = r.invoke(ctx, cmd)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrQuit):
			logger.Debug("exit requested", "label", cmd.Label)
			r.state = StateStopped
			continue
		case domain.IsInputError(err):
			r.term.Println(err.Error())
		case isEndOfInput(ctx, err):
			runErr = r.stop(ctx, err)
		default:
			logger.Error("action failed", "path", cmd.Path, "error", err)
			runErr = fmt.Errorf("action %q failed: %w", cmd.Label, err)
			r.state = StateStopped
		}
		if r.state != StateRunning {
			break
		}

		if r.pause != nil {
			if err := r.pause(ctx); err != nil {
				runErr = r.stop(ctx, err)
			}
		}
	}

	logger.Debug("session ended", "actions", actions)
	if r.hooks.OnSessionEnd != nil {
		r.hooks.OnSessionEnd(ctx, &domain.SessionEvent{
			EventBase: r.base(domain.EventSessionEnd),
			Actions:   actions,
			Err:       runErr,
		})
	}
	return runErr
}

// invoke runs one action, turning a panic into an error.
func (r *Runner) invoke(ctx context.Context, cmd menu.Command) (err error) {
	event := &domain.ActionEvent{
		EventBase: r.base(domain.EventActionStart),
		Label:     cmd.Label,
		Path:      cmd.Path,
	}
	if r.hooks.OnActionStart != nil {
		r.hooks.OnActionStart(ctx, event)
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %q: %v", cmd.Label, rec)
		}
		if r.hooks.OnActionDone != nil {
			done := *event
			done.Type = domain.EventActionDone
			done.Timestamp = time.Now()
			done.Duration = time.Since(start)
			done.Err = err
			r.hooks.OnActionDone(ctx, &done)
		}
	}()

	return cmd.Action(ctx)
}

// stop ends the loop because input is no longer available.
func (r *Runner) stop(ctx context.Context, err error) error {
	r.state = StateStopped
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if isEndOfInput(ctx, err) {
		return nil
	}
	return err
}

func (r *Runner) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: r.sessionID,
	}
}

func isEndOfInput(ctx context.Context, err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, domain.ErrInterrupted) ||
		(ctx.Err() != nil && errors.Is(err, ctx.Err()))
}
