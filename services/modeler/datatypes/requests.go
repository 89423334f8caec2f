// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Request and response envelopes for the modeler HTTP API.
//
// The camelCase JSON field names (enhancedDescription, umlSyntax, createdAt)
// are the wire contract consumed by the web frontend and umlctl; do not
// rename them.
package datatypes

import (
	"github.com/go-playground/validator/v10"
)

const (
	// MaxDescriptionBytes caps free-text system descriptions. Larger
	// inputs are rejected before extraction to bound memory and LLM cost.
	MaxDescriptionBytes = 32 * 1024

	// MaxEntitiesPerRequest caps the model size accepted for rendering
	// and saving.
	MaxEntitiesPerRequest = 200
)

// requestValidate validates request envelopes. It carries the envelope
// size validators plus "identifier", which the nested Entity and
// Relationship fields declare.
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	_ = requestValidate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxDescriptionBytes
	})
	_ = requestValidate.RegisterValidation("maxentities", func(fl validator.FieldLevel) bool {
		return fl.Field().Len() <= MaxEntitiesPerRequest
	})
	_ = requestValidate.RegisterValidation("identifier", validateIdentifier)
}

// =============================================================================
// POST /process-specs
// =============================================================================

// ProcessSpecsRequest carries a free-text description of a system to be
// turned into an entity/relationship model.
type ProcessSpecsRequest struct {
	Description string `json:"description" validate:"required,maxbytes"`
}

// Validate checks the request after JSON binding.
func (r *ProcessSpecsRequest) Validate() error {
	return requestValidate.Struct(r)
}

// ProcessSpecsResponse is the heuristically derived model plus the
// enhanced description shown to the user.
type ProcessSpecsResponse struct {
	EnhancedDescription string         `json:"enhancedDescription"`
	Entities            []Entity       `json:"entities"`
	Relationships       []Relationship `json:"relationships"`

	// Source records which candidate path produced the entities
	// (words, fallback_words, template, domain, fallback). Metrics
	// only, never serialized.
	Source string `json:"-"`
}

// =============================================================================
// POST /generate-uml
// =============================================================================

// GenerateUMLRequest carries a model to render as Mermaid class-diagram
// syntax. Relationship types outside the known set are rendered as plain
// associations, so they are not rejected here. An empty entity list is
// accepted and renders as a bare classDiagram header.
type GenerateUMLRequest struct {
	Entities      []Entity       `json:"entities" validate:"maxentities,dive"`
	Relationships []Relationship `json:"relationships" validate:"dive"`
}

// Validate checks the request after JSON binding.
func (r *GenerateUMLRequest) Validate() error {
	return requestValidate.Struct(r)
}

// GenerateUMLResponse carries the rendered diagram syntax.
type GenerateUMLResponse struct {
	UMLSyntax string `json:"umlSyntax"`
}

// =============================================================================
// POST /save-uml
// =============================================================================

// SaveUMLRequest persists a rendered diagram together with the model it
// was rendered from. Title may be empty; the store assigns "UML Diagram N".
type SaveUMLRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description" validate:"maxbytes"`
	UMLSyntax     string         `json:"umlSyntax" validate:"required"`
	Entities      []Entity       `json:"entities" validate:"required,min=1,maxentities,dive"`
	Relationships []Relationship `json:"relationships" validate:"dive"`
}

// Validate checks the request after JSON binding.
func (r *SaveUMLRequest) Validate() error {
	return requestValidate.Struct(r)
}

// SaveUMLResponse acknowledges a save with the assigned diagram id.
type SaveUMLResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// =============================================================================
// History
// =============================================================================

// UMLDiagram is a persisted diagram as returned by the history endpoints.
//
// ID is a UUID v4 assigned by the store; CreatedAt is RFC 3339 in UTC.
type UMLDiagram struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	UMLSyntax     string         `json:"umlSyntax"`
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	CreatedAt     string         `json:"createdAt"`
}

// =============================================================================
// Live Preview (GET /ws/preview)
// =============================================================================

// PreviewRequest is one websocket frame from the editor: the current model
// to render.
type PreviewRequest struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// PreviewResponse is the rendered syntax pushed back to the editor, or an
// error message when the frame could not be rendered.
type PreviewResponse struct {
	UMLSyntax string `json:"umlSyntax,omitempty"`
	Error     string `json:"error,omitempty"`
}

// =============================================================================
// POST /admin/backup
// =============================================================================

// BackupResponse reports where a history snapshot was written.
type BackupResponse struct {
	Location string `json:"location"`
	Diagrams int    `json:"diagrams"`
}
