// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied names.
//
// Entity, attribute, and method names end up verbatim in generated
// Mermaid syntax, so anything outside the identifier charset could break
// the diagram or smuggle markup into the rendering page. Validate names
// at every boundary that accepts them.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches names safe to embed in diagram syntax:
// a letter or underscore followed by letters, digits, or underscores.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MaxIdentifierLength bounds names; longer ones are almost certainly
// pasted prose, not a class name.
const MaxIdentifierLength = 64

// ValidateIdentifier checks a single entity, attribute, or method name.
//
// Example:
//
//	if err := validation.ValidateIdentifier(name); err != nil {
//	    return fmt.Errorf("invalid entity name: %w", err)
//	}
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("name too long: %d characters (max %d)", len(name), MaxIdentifierLength)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid name %q (letters, digits, and underscores only, must not start with a digit)", name)
	}
	return nil
}

// ValidateIdentifiers checks several names and reports every invalid one.
func ValidateIdentifiers(names []string) error {
	var invalid []string
	for _, n := range names {
		if err := ValidateIdentifier(n); err != nil {
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid names: %v", invalid)
	}
	return nil
}

// SanitizeIdentifier trims whitespace and validates. Returns the cleaned
// name, or an error when it still fails validation.
func SanitizeIdentifier(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if err := ValidateIdentifier(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}
