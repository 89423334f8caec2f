// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides the wire-level data structures for the modeler
// service.
//
// This file contains the entity/relationship model itself. The JSON field
// names are part of the public API contract and must stay camelCase
// (attributes carry "returnType", relationships carry "source"/"target").
// Request and response envelopes live in requests.go.
package datatypes

import (
	"github.com/go-playground/validator/v10"

	"github.com/Ag-Linings/uml-diagram/pkg/validation"
)

// =============================================================================
// Visibility and Relationship Kinds
// =============================================================================

// Visibility levels understood by the diagram renderer.
//
// Anything else renders as public ("+"), matching the permissive behavior
// of the original API.
const (
	VisibilityPublic    = "public"
	VisibilityPrivate   = "private"
	VisibilityProtected = "protected"
)

// Relationship kinds. An unrecognized kind is rendered as a plain
// association arrow rather than rejected, so older clients keep working.
const (
	RelAssociation = "association"
	RelInheritance = "inheritance"
	RelComposition = "composition"
	RelAggregation = "aggregation"
	RelDependency  = "dependency"
)

// RelationshipKinds lists every kind the editor offers.
var RelationshipKinds = []string{
	RelAssociation,
	RelInheritance,
	RelComposition,
	RelAggregation,
	RelDependency,
}

// IsRelationshipKind reports whether kind is one of the five supported
// relationship kinds.
func IsRelationshipKind(kind string) bool {
	for _, k := range RelationshipKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// =============================================================================
// Shared Validator Instance
// =============================================================================

// modelValidate is the validator instance for model datatypes.
// Initialized in init() with custom validators.
var modelValidate *validator.Validate

func init() {
	modelValidate = validator.New()
	_ = modelValidate.RegisterValidation("identifier", validateIdentifier)
}

// validateIdentifier enforces the shared identifier rules on string
// fields tagged with "identifier". Checked on entity, attribute and
// method names because those land verbatim in generated Mermaid text.
func validateIdentifier(fl validator.FieldLevel) bool {
	return validation.ValidateIdentifier(fl.Field().String()) == nil
}

// =============================================================================
// Model Types
// =============================================================================

// Attribute is a single class attribute.
//
// Type is free-form so generics like "List<Student>" survive round-trips.
type Attribute struct {
	Name       string `json:"name" validate:"required,identifier"`
	Type       string `json:"type" validate:"required"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private protected"`
}

// Parameter is a named, typed method parameter.
type Parameter struct {
	Name string `json:"name" validate:"required,identifier"`
	Type string `json:"type" validate:"required"`
}

// Method is a class operation with an ordered parameter list.
type Method struct {
	Name       string      `json:"name" validate:"required,identifier"`
	ReturnType string      `json:"returnType" validate:"required"`
	Parameters []Parameter `json:"parameters" validate:"dive"`
	Visibility string      `json:"visibility" validate:"omitempty,oneof=public private protected"`
}

// Entity is a named class-like record with attributes and methods.
//
// Entity names are unique within a Model; the editor operations in
// editor.go enforce that.
type Entity struct {
	Name       string      `json:"name" validate:"required,identifier"`
	Attributes []Attribute `json:"attributes" validate:"dive"`
	Methods    []Method    `json:"methods" validate:"dive"`
}

// Validate checks the entity and everything nested in it.
func (e *Entity) Validate() error {
	return modelValidate.Struct(e)
}

// Relationship is a directed, typed edge between two entity names.
//
// Type is intentionally not restricted to the known kinds here: the
// renderer treats unknown kinds as associations. The stricter check
// (IsRelationshipKind) is applied only by the editor operations.
type Relationship struct {
	Source string `json:"source" validate:"required,identifier"`
	Target string `json:"target" validate:"required,identifier"`
	Type   string `json:"type" validate:"required"`
	Label  string `json:"label,omitempty"`
}

// Validate checks the relationship fields.
func (r *Relationship) Validate() error {
	return modelValidate.Struct(r)
}
