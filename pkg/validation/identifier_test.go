// Copyright (C) 2025 Ag Linings
// Tests for identifier validation.

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier_Valid(t *testing.T) {
	for _, name := range []string{"Student", "order_item", "_private", "Invoice2"} {
		assert.NoError(t, ValidateIdentifier(name), name)
	}
}

func TestValidateIdentifier_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2Student",
		"Stu dent",
		"Student{}",
		"a:b",
		"class-name",
		strings.Repeat("a", MaxIdentifierLength+1),
	}
	for _, name := range cases {
		assert.Error(t, ValidateIdentifier(name), name)
	}
}

func TestValidateIdentifiers_ReportsAllInvalid(t *testing.T) {
	err := ValidateIdentifiers([]string{"Student", "2bad", "also bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2bad")
	assert.Contains(t, err.Error(), "also bad")
}

func TestSanitizeIdentifier(t *testing.T) {
	got, err := SanitizeIdentifier("  Student ")
	require.NoError(t, err)
	assert.Equal(t, "Student", got)

	_, err = SanitizeIdentifier("  ")
	assert.Error(t, err)
}
