// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package output renders folioctl messages with terminal styling.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle     = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
)

// Printer writes styled lines to w.
type Printer struct {
	w io.Writer
}

// New creates a [Printer] on w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	p.line(successStyle.Render("✓ "), format, args...)
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...any) {
	p.line(warningStyle.Render("⚠ "), format, args...)
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...any) {
	p.line(errorStyle.Render("✗ "), format, args...)
}

// Info prints an info message.
func (p *Printer) Info(format string, args ...any) {
	p.line(infoStyle.Render("ℹ "), format, args...)
}

// Field prints an aligned "key value" pair.
func (p *Printer) Field(key string, value any) {
	fmt.Fprintf(p.w, "  %s%v\n", keyStyle.Render(key), value)
}

// Muted prints a dimmed line.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) line(prefix, format string, args ...any) {
	fmt.Fprintf(p.w, "%s"+format+"\n", append([]any{prefix}, args...)...)
}
