package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// Ensure consoleConfirmer implements the interface.
var _ driven.Confirmer = (*consoleConfirmer)(nil)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF"))

// consoleConfirmer asks on the console. Only "y" or "yes" proceed.
// At most one read of in is outstanding; a read left behind by a canceled
// prompt answers the next one.
type consoleConfirmer struct {
	in      *bufio.Reader
	out     io.Writer
	pending chan answer
}

type answer struct {
	line string
	err  error
}

func newConsoleConfirmer(in io.Reader, out io.Writer) *consoleConfirmer {
	return &consoleConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints msg and waits for an answer.
func (c *consoleConfirmer) Confirm(ctx context.Context, msg string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, msg)
	fmt.Fprint(c.out, promptStyle.Render("Are you sure (y/n)? "))

	if c.pending == nil {
		ch := make(chan answer, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- answer{line, err}
		}()
		c.pending = ch
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false, ctx.Err()
	case a := <-c.pending:
		c.pending = nil
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, a.err
		}
		if errors.Is(a.err, io.EOF) && a.line == "" {
			fmt.Fprintln(c.out)
		}
		return isYes(a.line), nil
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
