package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
)

// Ensure consoleProgress implements the interface.
var _ driven.ProgressReporter = (*consoleProgress)(nil)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))

// consoleProgress renders percentages. On a terminal the line is
// redrawn in place; otherwise each change is printed on its own line.
type consoleProgress struct {
	out   io.Writer
	tty   bool
	label string
	last  int
}

func newConsoleProgress(out io.Writer) *consoleProgress {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &consoleProgress{out: out, tty: tty, last: -1}
}

// Start begins a progress line.
func (p *consoleProgress) Start(label string) {
	p.label = label
	p.last = -1
}

// Update reports the completion percentage.
func (p *consoleProgress) Update(percent int) {
	if percent == p.last {
		return
	}
	p.last = percent
	line := fmt.Sprintf("%s %3d%%", labelStyle.Render(p.label), percent)
	if p.tty {
		fmt.Fprintf(p.out, "\r%s", line)
		return
	}
	fmt.Fprintln(p.out, line)
}

// Done ends the progress line.
func (p *consoleProgress) Done() {
	if p.tty && p.last >= 0 {
		fmt.Fprintln(p.out)
	}
	p.last = -1
}
