package runner_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/menu"
	"github.com/aretw0/storedesk/pkg/runner"
)

// scriptedTerminal answers menu prompts by label and records printed lines.
type scriptedTerminal struct {
	script  []string
	titles  []string
	printed []string
}

func (s *scriptedTerminal) Choose(_ context.Context, title string, options []string) (int, error) {
	s.titles = append(s.titles, title)
	if len(s.script) == 0 {
		return 0, io.EOF
	}
	next := s.script[0]
	s.script = s.script[1:]
	for i, o := range options {
		if o == next {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no option %q in %v", next, options)
}

func (s *scriptedTerminal) Println(a ...any) {
	s.printed = append(s.printed, fmt.Sprint(a...))
}

type pauseMock struct {
	mock.Mock
}

func (m *pauseMock) Pause(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func quit(context.Context) error { return domain.ErrQuit }

func TestRunner_InputErrorIsPrintedAndLoopContinues(t *testing.T) {
	m := menu.New()
	clients := m.Group("Clients", menu.Root)
	calls := 0
	m.Item("New client", func(context.Context) error {
		calls++
		return domain.Inputf("Email can not be empty")
	}, clients)
	m.Exit("Exit")

	term := &scriptedTerminal{script: []string{"Clients", "New client", "Exit"}}
	pauser := new(pauseMock)
	pauser.On("Pause", mock.Anything).Return(nil).Once()

	r := runner.NewRunner(m, term, runner.WithPauseGate(pauser.Pause))
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Email can not be empty"}, term.printed)
	// Root, Clients, then Root again after the error.
	assert.Equal(t, []string{menu.DefaultTitle, "Clients", menu.DefaultTitle}, term.titles)
	assert.Equal(t, runner.StateStopped, r.State())
	pauser.AssertExpectations(t)
}

func TestRunner_ExitSkipsPause(t *testing.T) {
	m := menu.New()
	m.Exit("Exit")

	term := &scriptedTerminal{script: []string{"Exit"}}
	pauser := new(pauseMock)

	r := runner.NewRunner(m, term, runner.WithPauseGate(pauser.Pause))
	require.NoError(t, r.Run(context.Background()))
	pauser.AssertNotCalled(t, "Pause", mock.Anything)
}

func TestRunner_UnexpectedErrorEndsSession(t *testing.T) {
	boom := errors.New("store unavailable")
	m := menu.New()
	m.Item("Broken", func(context.Context) error { return boom }, menu.Root)
	m.Exit("Exit")

	term := &scriptedTerminal{script: []string{"Broken", "Exit"}}
	r := runner.NewRunner(m, term, runner.WithPauseGate(nil))

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, runner.StateStopped, r.State())
	assert.Equal(t, []string{"Exit"}, term.script, "menu must not be shown after a fatal error")
}

func TestRunner_PanicIsContained(t *testing.T) {
	m := menu.New()
	m.Item("Panics", func(context.Context) error { panic("nil map") }, menu.Root)

	term := &scriptedTerminal{script: []string{"Panics"}}
	err := runner.NewRunner(m, term).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil map")
}

func TestRunner_EndOfInputIsClean(t *testing.T) {
	m := menu.New()
	m.Exit("Exit")

	r := runner.NewRunner(m, &scriptedTerminal{})
	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, runner.StateStopped, r.State())
}

func TestRunner_EOFInsideActionIsClean(t *testing.T) {
	m := menu.New()
	m.Item("Reads", func(context.Context) error {
		return fmt.Errorf("reading name: %w", io.EOF)
	}, menu.Root)

	r := runner.NewRunner(m, &scriptedTerminal{script: []string{"Reads"}})
	assert.NoError(t, r.Run(context.Background()))
}

func TestRunner_PauseInterrupted(t *testing.T) {
	m := menu.New()
	m.Item("Noop", func(context.Context) error { return nil }, menu.Root)

	term := &scriptedTerminal{script: []string{"Noop", "Noop"}}
	r := runner.NewRunner(m, term, runner.WithPauseGate(func(context.Context) error {
		return domain.ErrInterrupted
	}))
	assert.NoError(t, r.Run(context.Background()))
	assert.Len(t, term.script, 1)
}

func TestRunner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := menu.New()
	m.Item("Cancel", func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	}, menu.Root)

	r := runner.NewRunner(m, &scriptedTerminal{script: []string{"Cancel"}})
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestRunner_Hooks(t *testing.T) {
	var (
		started []string
		done    []string
		ended   *domain.SessionEvent
	)
	hooks := domain.LifecycleHooks{
		OnActionStart: func(_ context.Context, e *domain.ActionEvent) { started = append(started, e.Label) },
		OnActionDone:  func(_ context.Context, e *domain.ActionEvent) { done = append(done, e.Outcome()) },
		OnSessionEnd:  func(_ context.Context, e *domain.SessionEvent) { ended = e },
	}

	m := menu.New()
	m.Item("Bad", func(context.Context) error { return domain.Inputf("nope") }, menu.Root)
	m.Item("Good", func(context.Context) error { return nil }, menu.Root)
	m.Item("Exit", quit, menu.Root)

	term := &scriptedTerminal{script: []string{"Bad", "Good", "Exit"}}
	r := runner.NewRunner(m, term,
		runner.WithHooks(hooks),
		runner.WithSessionID("s-1"),
		runner.WithPauseGate(nil),
	)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"Bad", "Good", "Exit"}, started)
	assert.Equal(t, []string{"input_error", "ok", "quit"}, done)
	require.NotNil(t, ended)
	assert.Equal(t, 3, ended.Actions)
	assert.Equal(t, "s-1", ended.SessionID)
	assert.NoError(t, ended.Err)
}
