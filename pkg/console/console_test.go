package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestConsole_LineTrimsAndSanitizes(t *testing.T) {
	c, out := newTestConsole("  Smith \x07 \n")

	got, err := c.Line(context.Background(), "Last name: ")
	require.NoError(t, err)
	assert.Equal(t, "Smith", got)
	assert.Equal(t, "Last name: ", out.String())
}

func TestConsole_LineBlank(t *testing.T) {
	c, _ := newTestConsole("\n")

	got, err := c.Line(context.Background(), "Phone: ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConsole_LineWithoutTrailingNewline(t *testing.T) {
	c, _ := newTestConsole("last")

	got, err := c.Line(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = c.Line(context.Background(), "")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_EOF(t *testing.T) {
	c, _ := newTestConsole("")

	_, err := c.Line(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_CancelledContext(t *testing.T) {
	c, _ := newTestConsole("ignored\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Line(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsole_ReadsAgainAfterTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(pr, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Line(ctx, "> ")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = pw.Write([]byte("late\nsecond\n")) }()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	got, err := c.Line(ctx2, "> ")
	require.NoError(t, err)
	assert.Equal(t, "late", got)

	got, err = c.Line(ctx2, "> ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestConsole_InvalidUTF8Retries(t *testing.T) {
	c, out := newTestConsole("\xff\xfe\nok\n")

	got, err := c.Line(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestConsole_IntRetriesUntilValid(t *testing.T) {
	c, out := newTestConsole("abc\n\n7\n")

	n, err := c.Int(context.Background(), "Quantity: ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 3, strings.Count(out.String(), "Quantity: "))
	assert.Contains(t, out.String(), `"abc" is not a whole number`)
}

func TestConsole_Decimal(t *testing.T) {
	c, out := newTestConsole("ten\n10.50\n")

	d, err := c.Decimal(context.Background(), "Price: ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("10.5")))
	assert.Contains(t, out.String(), `"ten" is not a number`)
}

func TestConsole_Date(t *testing.T) {
	c, out := newTestConsole("15/03/2024\n2024-03-15\n")

	d, err := c.Date(context.Background(), "From: ")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Contains(t, out.String(), "is not a date")
}

func TestConsole_DateLayoutOption(t *testing.T) {
	c := New(strings.NewReader("15/03/2024\n"), io.Discard, WithDateLayout("02/01/2006"))

	d, err := c.Date(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, time.March, d.Month())
}

func TestConsole_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"Blank Takes Default Yes", "\n", true, true},
		{"Blank Takes Default No", "\n", false, false},
		{"Yes", "yes\n", false, true},
		{"Short No", "N\n", true, false},
		{"Invalid Then Yes", "maybe\ny\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConsole(tt.input)
			got, err := c.Confirm(context.Background(), "Delete?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsole_ConfirmHint(t *testing.T) {
	c, out := newTestConsole("\n")

	_, err := c.Confirm(context.Background(), "Delete?", true)
	require.NoError(t, err)
	assert.Equal(t, "Delete? [Y/n] ", out.String())
}

func TestConsole_Choose(t *testing.T) {
	c, out := newTestConsole("0\n4\nx\n2\n")

	idx, err := c.Choose(context.Background(), "Main menu", []string{"Orders", "Products", "Exit"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	text := out.String()
	assert.Contains(t, text, "Main menu\n")
	assert.Contains(t, text, "  1) Orders\n")
	assert.Contains(t, text, "  3) Exit\n")
	assert.Equal(t, 3, strings.Count(text, "choose a number between 1 and 3"))
}

func TestConsole_ChooseNumberWidth(t *testing.T) {
	options := make([]string, 10)
	for i := range options {
		options[i] = "item"
	}
	c, out := newTestConsole("10\n")

	idx, err := c.Choose(context.Background(), "", options)
	require.NoError(t, err)
	assert.Equal(t, 9, idx)
	assert.Contains(t, out.String(), "   1) item\n")
	assert.Contains(t, out.String(), "  10) item\n")
}

func TestConsole_ChooseEmpty(t *testing.T) {
	c, _ := newTestConsole("1\n")

	_, err := c.Choose(context.Background(), "Nothing", nil)
	assert.Error(t, err)
}

func TestConsole_Render(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader(""), out, WithRenderer(func(s string) (string, error) {
		return "Rendered: " + s + "\n\n", nil
	}))

	c.Render("# Report")
	assert.Equal(t, "Rendered: # Report\n", out.String())
}

func TestConsole_RenderFallsBackOnError(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader(""), out, WithRenderer(func(string) (string, error) {
		return "", io.ErrUnexpectedEOF
	}))

	c.Render("plain")
	assert.Equal(t, "plain\n", out.String())
}

func TestConsole_PauseConsumesLine(t *testing.T) {
	c, out := newTestConsole("\nnext\n")

	require.NoError(t, c.Pause(context.Background()))
	assert.Contains(t, out.String(), PauseMessage)

	got, err := c.Line(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "next", got)
}
