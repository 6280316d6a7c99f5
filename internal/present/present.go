// SPDX-License-Identifier: AGPL-3.0-only

// Package present renders scheduler status transitions as human-readable,
// optionally colorized lines. It is a formatting concern only: it has no
// control loop and does not read input, so it stays a plain status feed
// rather than an interactive TUI.
package present

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Printer writes "job: <name>: <status>" lines to w, styling them when w
// looks like a terminal and the caller hasn't disabled color.
type Printer struct {
	w     io.Writer
	color bool
}

// New builds a Printer for w. color is auto-detected from w being a TTY
// and NO_COLOR being unset, then overridden by noColor if true.
func New(w io.Writer, noColor bool) *Printer {
	color := !noColor && isTerminal(w) && os.Getenv("NO_COLOR") == ""
	return &Printer{w: w, color: color}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Line prints one status transition for job name. isErr selects the
// distinctive error treatment; otherwise the status text is styled by
// whether it represents a change.
func (p *Printer) Line(name, status string, isErr, changed bool) {
	body := fmt.Sprintf("job: %s: %s", name, status)
	if !p.color {
		fmt.Fprintln(p.w, body)
		return
	}
	switch {
	case isErr:
		fmt.Fprintln(p.w, errStyle.Render(body))
	case changed:
		fmt.Fprintln(p.w, okStyle.Render(body))
	default:
		fmt.Fprintln(p.w, dimStyle.Render(body))
	}
}
