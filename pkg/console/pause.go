package console

import (
	"context"
	"fmt"

	"golang.org/x/term"

	"github.com/aretw0/storedesk/pkg/domain"
)

// PauseMessage is printed by Pause.
const PauseMessage = "Press any key to continue"

// Pause blocks until the operator acknowledges the output of the last action.
// On a terminal a single key press is enough; otherwise a full line is consumed.
func (c *Console) Pause(ctx context.Context) error {
	if c.terminal == nil {
		_, err := c.readLine(ctx, PauseMessage+"\n")
		return err
	}
	fmt.Fprintln(c.Writer, PauseMessage)
	_, err := c.receive(ctx, true)
	return err
}

// readKey reads a single byte with the terminal in raw mode. Runs on the pump goroutine.
func (c *Console) readKey() (string, error) {
	if c.terminal == nil {
		return c.Reader.ReadString('\n')
	}
	fd := int(c.terminal.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	b, err := c.Reader.ReadByte()
	if err != nil {
		return "", err
	}
	if b == 3 { // Ctrl+C
		return "", domain.ErrInterrupted
	}
	return string(b), nil
}
