// Package printer writes styled status messages for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/songbook/internal/core/styles"
)

type ctxKey struct{}

// Printer writes one styled message per line.
type Printer struct {
	w io.Writer
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a printer writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if icon != "" {
		msg = style.Render(icon) + " " + msg
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", lipgloss.Style{}, format, args...)
}

// Successf writes a line with a success marker.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", lipgloss.NewStyle().Foreground(styles.ColorSuccess), format, args...)
}

// Infof writes a line with an info marker.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", lipgloss.NewStyle().Foreground(styles.ColorSecondary), format, args...)
}

// Warnf writes a line with a warning marker.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", lipgloss.NewStyle().Foreground(styles.ColorWarning), format, args...)
}

// Errorf writes a line with an error marker.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", lipgloss.NewStyle().Foreground(styles.ColorError), format, args...)
}

// Section writes a header followed by a divider.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.w, styles.DividerStyle.Render(strings.Repeat("─", lipgloss.Width(title))))
}
