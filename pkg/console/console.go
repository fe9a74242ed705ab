package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// DefaultDateLayout is the layout accepted by Date.
const DefaultDateLayout = "2006-01-02"

// ContentRenderer transforms a report (Markdown) before it is printed.
type ContentRenderer func(string) (string, error)

// Console implements the operator data-entry primitives over a line-oriented
// reader and a writer.
type Console struct {
	source     io.Reader
	Reader     *bufio.Reader
	Writer     io.Writer
	Renderer   ContentRenderer
	DateLayout string

	out       *termenv.Output
	terminal  *os.File
	requests  chan bool
	results   chan inputResult
	startOnce sync.Once
	// inflight is set while a request sent to pump has no consumed result.
	inflight bool
}

type inputResult struct {
	text string
	err  error
}

// Option configures a Console.
type Option func(*Console)

// WithRenderer configures the report renderer.
func WithRenderer(renderer ContentRenderer) Option {
	return func(c *Console) {
		c.Renderer = renderer
	}
}

// WithDateLayout overrides DefaultDateLayout.
func WithDateLayout(layout string) Option {
	return func(c *Console) {
		c.DateLayout = layout
	}
}

// New creates a console. Nil reader or writer default to Stdin and Stdout.
func New(r io.Reader, w io.Writer, opts ...Option) *Console {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	c := &Console{
		source:     r,
		Reader:     bufio.NewReader(r),
		Writer:     w,
		DateLayout: DefaultDateLayout,
		out:        termenv.NewOutput(w),
	}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.terminal = f
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) initPump() {
	c.startOnce.Do(func() {
		c.requests = make(chan bool)
		c.results = make(chan inputResult, 1)
		go c.pump()
	})
}

// pump performs reads on behalf of the session so a blocked read never keeps a
// cancelled context waiting. A request value of true asks for a single key press.
// A result whose caller gave up is kept for the next receive.
func (c *Console) pump() {
	var pending error
	for key := range c.requests {
		if pending != nil {
			c.results <- inputResult{err: pending}
			continue
		}
		if key {
			text, err := c.readKey()
			c.results <- inputResult{text: text, err: err}
			continue
		}
		text, err := c.Reader.ReadString('\n')
		if err != nil && text != "" {
			// Deliver the partial line now and the error on the next request.
			pending, err = err, nil
		}
		if err != nil {
			pending = err
		}
		c.results <- inputResult{text: text, err: err}
	}
}

func (c *Console) receive(ctx context.Context, key bool) (string, error) {
	c.initPump()
	if !c.inflight {
		select {
		case c.requests <- key:
			c.inflight = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	select {
	case res := <-c.results:
		c.inflight = false
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLine prints label and waits for one sanitized, trimmed line.
func (c *Console) readLine(ctx context.Context, label string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(c.Writer, label)

		text, err := c.receive(ctx, false)
		if err != nil {
			return "", err
		}
		clean, err := SanitizeInput(strings.TrimRight(text, "\r\n"))
		if err != nil {
			c.retry(err)
			continue
		}
		return strings.TrimSpace(clean), nil
	}
}

func (c *Console) retry(err error) {
	c.Warn(fmt.Sprintf("Error: %v. Please try again.", err))
}

// Line reads free text. An empty string means the operator left it blank.
func (c *Console) Line(ctx context.Context, label string) (string, error) {
	return c.readLine(ctx, label)
}

// Int reads an integer, asking again until the input parses.
func (c *Console) Int(ctx context.Context, label string) (int, error) {
	for {
		text, err := c.readLine(ctx, label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			c.retry(fmt.Errorf("%q is not a whole number", text))
			continue
		}
		return n, nil
	}
}

// Decimal reads a decimal number, asking again until the input parses.
func (c *Console) Decimal(ctx context.Context, label string) (decimal.Decimal, error) {
	for {
		text, err := c.readLine(ctx, label)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			c.retry(fmt.Errorf("%q is not a number", text))
			continue
		}
		return d, nil
	}
}

// Date reads a date in DateLayout, asking again until the input parses.
func (c *Console) Date(ctx context.Context, label string) (time.Time, error) {
	for {
		text, err := c.readLine(ctx, label)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.ParseInLocation(c.DateLayout, text, time.Local)
		if err != nil {
			c.retry(fmt.Errorf("%q is not a date (%s)", text, c.DateLayout))
			continue
		}
		return t, nil
	}
}

// Confirm asks a yes/no question. Blank input selects def.
func (c *Console) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	hint := " [y/N] "
	if def {
		hint = " [Y/n] "
	}
	for {
		text, err := c.readLine(ctx, label+hint)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(text) {
		case "":
			return def, nil
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
		c.retry(fmt.Errorf("invalid confirmation input: '%s' (expected y/n/yes/no)", text))
	}
}

// Choose prints a numbered list and blocks until a valid number is entered.
// It returns the zero-based index.
func (c *Console) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("console: nothing to choose from")
	}
	if title != "" {
		fmt.Fprintln(c.Writer, c.out.String(title).Bold())
	}
	width := len(strconv.Itoa(len(options)))
	for i, o := range options {
		fmt.Fprintf(c.Writer, "  %*d) %s\n", width, i+1, o)
	}
	for {
		text, err := c.readLine(ctx, "> ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > len(options) {
			c.retry(fmt.Errorf("choose a number between 1 and %d", len(options)))
			continue
		}
		return n - 1, nil
	}
}

// Println writes a line of output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.Writer, a...)
}

// Printf writes formatted output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.Writer, format, a...)
}

// Warn writes a highlighted message (red on color terminals).
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.Writer, c.out.String(msg).Foreground(c.out.Color("1")))
}

// Render prints a Markdown report through the renderer, falling back to the raw text.
func (c *Console) Render(markdown string) {
	output := markdown
	if c.Renderer != nil {
		if rendered, err := c.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(c.Writer, strings.TrimRight(output, "\n"))
}
