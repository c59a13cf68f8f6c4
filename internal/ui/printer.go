// Package ui renders user-facing console output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Icon is a status marker printed in front of a message.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconInfo    Icon = "ℹ"
	IconBullet  Icon = "•"
)

var (
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorAccent  = lipgloss.Color("#20B9B4")
	colorMuted   = lipgloss.Color("#6C8A94")
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	code    lipgloss.Style
}

// Printer writes styled lines to one writer. Colors are dropped when the
// writer is not a terminal.
type Printer struct {
	out io.Writer
	s   styles
}

// NewPrinter binds a lipgloss renderer to out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		s: styles{
			title:   r.NewStyle().Bold(true).Foreground(colorAccent),
			section: r.NewStyle().Bold(true),
			success: r.NewStyle().Foreground(colorSuccess),
			warning: r.NewStyle().Foreground(colorWarning),
			errorS:  r.NewStyle().Foreground(colorError),
			info:    r.NewStyle().Foreground(colorAccent),
			muted:   r.NewStyle().Foreground(colorMuted),
			code:    r.NewStyle().Foreground(colorAccent),
		},
	}
}

// Writer returns the underlying writer, for echoing tool output.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.out, s)
}

// Title prints a run heading followed by a rule.
func (p *Printer) Title(text string) {
	p.line("")
	p.line(p.s.title.Render(text))
	p.line(p.s.muted.Render(strings.Repeat("=", 50)))
}

// Section prints a step heading.
func (p *Printer) Section(text string) {
	p.line("")
	p.line(p.s.section.Render(text))
}

func (p *Printer) Success(format string, args ...any) {
	p.line(p.s.success.Render(string(IconSuccess)) + " " + fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	p.line(p.s.warning.Render(string(IconWarning) + " " + fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	p.line(p.s.errorS.Render(string(IconError) + " " + fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	p.line(p.s.info.Render(string(IconInfo)) + " " + fmt.Sprintf(format, args...))
}

// Bullet prints an indented list item.
func (p *Printer) Bullet(format string, args ...any) {
	p.line("  " + p.s.muted.Render(string(IconBullet)) + " " + fmt.Sprintf(format, args...))
}

// Plain prints an unstyled, indented line.
func (p *Printer) Plain(format string, args ...any) {
	p.line("   " + fmt.Sprintf(format, args...))
}

// Code prints a command or snippet the user may copy.
func (p *Printer) Code(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.line("     " + p.s.code.Render(l))
	}
}

// Rule prints a separator line.
func (p *Printer) Rule() {
	p.line(p.s.muted.Render(strings.Repeat("─", 50)))
}

// Preview prints up to max lines of content, marking truncation.
func (p *Printer) Preview(content string, max int) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	p.Rule()
	for i, l := range lines {
		if i == max {
			p.Plain("...")
			break
		}
		p.Plain("%s", l)
	}
	p.Rule()
}
