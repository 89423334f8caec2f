// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the umlctl CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette - graphite and diagram blues
var (
	ColorBlueBright  = lipgloss.Color("#4FA8FF") // highlights, titles
	ColorBluePrimary = lipgloss.Color("#2D7FD6") // primary accents
	ColorBlueDeep    = lipgloss.Color("#1C5CA8") // borders
	ColorGraphite    = lipgloss.Color("#5C6773") // muted text
	ColorSuccess     = lipgloss.Color("#3DD68C")
	ColorWarning     = lipgloss.Color("#F4D03F")
	ColorError       = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
	Code      lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorBlueBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorBluePrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorGraphite),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(ColorBluePrimary),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlueDeep).
		Padding(0, 1),
	Code: lipgloss.NewStyle().Foreground(ColorBluePrimary),
}

// IsInteractive reports whether stdout is a terminal. Styled boxes and
// interactive forms are skipped when output is piped.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Title prints a styled section title, or plain text when piped.
func Title(text string) {
	if IsInteractive() {
		fmt.Println(Styles.Title.Render(text))
		return
	}
	fmt.Println(text)
}

// Success prints a styled confirmation line.
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if IsInteractive() {
		fmt.Println(Styles.Success.Render("✓ " + msg))
		return
	}
	fmt.Println(msg)
}

// Warn prints a styled warning line to stderr.
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if IsInteractive() {
		fmt.Fprintln(os.Stderr, Styles.Warning.Render("! "+msg))
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// Error prints a styled error line to stderr.
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if IsInteractive() {
		fmt.Fprintln(os.Stderr, Styles.Error.Render("✗ "+msg))
		return
	}
	fmt.Fprintln(os.Stderr, "error: "+msg)
}

// CodeBlock prints source text (Mermaid syntax, JSON) in a bordered box
// when interactive, or raw when piped so it can be redirected to a file.
func CodeBlock(text string) {
	if IsInteractive() {
		fmt.Println(Styles.Box.Render(Styles.Code.Render(text)))
		return
	}
	fmt.Println(text)
}
