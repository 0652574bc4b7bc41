// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ResolveColors reports whether output should be colored. NO_COLOR and
// TERM=dumb disable colors.
func ResolveColors(requested bool) bool {
	if !requested {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Printer writes formatted output.
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, useColors bool) *Printer {
	return &Printer{out: out, useColors: useColors}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...interface{}) {
	p.paint(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Warning prints a yellow warning line.
func (p *Printer) Warning(format string, args ...interface{}) {
	p.paint(color.FgYellow).Fprintf(p.out, "⚠ "+format+"\n", args...)
}

// Info prints a cyan line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.paint(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

// Plain prints without color.
func (p *Printer) Plain(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Confirm asks question and reads one line from in. An empty answer or one
// starting with y accepts; EOF declines.
func Confirm(p *Printer, in *bufio.Reader, question string) bool {
	p.paint(color.Bold).Fprintf(p.out, "%s [Y/n] ", question)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || strings.HasPrefix(answer, "y")
}
