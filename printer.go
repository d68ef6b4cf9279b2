package pauwcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used for harness output.
type Theme struct {
	Pass lipgloss.Style
	Fail lipgloss.Style
	Warn lipgloss.Style
	Bold lipgloss.Style
}

// DefaultTheme colors PASS green, FAIL red and warnings orange.
func DefaultTheme() Theme {
	return Theme{
		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),  // green
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red
		Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // orange
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// MonoTheme returns a theme without any styling.
func MonoTheme() Theme {
	return Theme{
		Pass: lipgloss.NewStyle(),
		Fail: lipgloss.NewStyle(),
		Warn: lipgloss.NewStyle(),
		Bold: lipgloss.NewStyle(),
	}
}

// Printer renders run progress and the final summary as plain lines.
type Printer struct {
	w     io.Writer
	theme Theme
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, theme Theme) *Printer {
	return &Printer{w: w, theme: theme}
}

// Port prints the port under test.
func (p *Printer) Port(name string) {
	fmt.Fprintf(p.w, "Port: %s\n", name)
}

// AwaitingReady announces the wait for READY.
func (p *Printer) AwaitingReady() {
	fmt.Fprintln(p.w, "Waiting for READY...")
}

// ReadyMissed warns that READY never arrived.
func (p *Printer) ReadyMissed() {
	fmt.Fprintln(p.w, p.theme.Warn.Render("WARN:")+" READY not seen, continuing anyway.")
}

// Outcome prints one PASS or FAIL line.
func (p *Printer) Outcome(o Outcome) {
	if o.Passed {
		fmt.Fprintf(p.w, "%s %s\n", p.theme.Pass.Render("PASS"), o.Name)
		return
	}
	msg := p.theme.Fail.Render("FAIL") + " " + o.Name
	if o.Detail != "" {
		msg += ": " + o.Detail
	}
	fmt.Fprintln(p.w, msg)
}

// Summary prints the failed check names, or a success banner.
func (p *Printer) Summary(r *Report) {
	if failed := r.Failed(); len(failed) > 0 {
		fmt.Fprintf(p.w, "\n%s %s\n", p.theme.Fail.Render("FAILURES:"), strings.Join(failed, ", "))
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", p.theme.Pass.Render("ALL TESTS PASSED"))
}
