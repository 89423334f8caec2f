// Copyright (C) 2025 Ag Linings
// Tests for terminal output styling.

package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyles_RenderText(t *testing.T) {
	// Rendering must preserve the text itself regardless of terminal
	// capabilities.
	assert.Contains(t, Styles.Title.Render("UML History"), "UML History")
	assert.Contains(t, Styles.Error.Render("boom"), "boom")
	assert.Contains(t, Styles.Code.Render("classDiagram"), "classDiagram")
}

func TestIsInteractive_NoPanic(t *testing.T) {
	// Value depends on the test environment; it just must not panic.
	_ = IsInteractive()
}
