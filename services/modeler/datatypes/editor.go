// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Model editing operations with cross-referential integrity.
//
// Every operation preserves the invariant that no relationship references
// an entity name absent from the entity list. Renames cascade into
// relationship endpoints, removals drop the edges that touch the entity.
package datatypes

import (
	"errors"
	"fmt"

	"github.com/Ag-Linings/uml-diagram/pkg/validation"
)

// Editing errors returned by Model operations. Handlers map these to 400/404.
var (
	// ErrEntityNotFound is returned when an operation names an entity
	// that is not part of the model.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityExists is returned when a rename would collide with an
	// existing entity name.
	ErrEntityExists = errors.New("entity already exists")

	// ErrUnknownRelationshipKind is returned by AddRelationship for a
	// kind outside the supported set.
	ErrUnknownRelationshipKind = errors.New("unknown relationship kind")
)

// Model is an editable entity/relationship model.
//
// The zero value is a valid empty model. Model is not safe for concurrent
// mutation; callers that share one across goroutines must serialize access.
type Model struct {
	Entities      []Entity       `json:"entities" validate:"dive"`
	Relationships []Relationship `json:"relationships" validate:"dive"`
}

// Validate checks every entity and relationship in the model, then the
// referential integrity between them.
func (m *Model) Validate() error {
	if err := modelValidate.Struct(m); err != nil {
		return err
	}
	for _, r := range m.Relationships {
		if !m.HasEntity(r.Source) {
			return fmt.Errorf("relationship %s->%s: source: %w", r.Source, r.Target, ErrEntityNotFound)
		}
		if !m.HasEntity(r.Target) {
			return fmt.Errorf("relationship %s->%s: target: %w", r.Source, r.Target, ErrEntityNotFound)
		}
	}
	return nil
}

// HasEntity reports whether the model contains an entity with that name.
func (m *Model) HasEntity(name string) bool {
	return m.entityIndex(name) >= 0
}

// Entity returns the named entity, or nil if it is not in the model.
func (m *Model) Entity(name string) *Entity {
	if i := m.entityIndex(name); i >= 0 {
		return &m.Entities[i]
	}
	return nil
}

func (m *Model) entityIndex(name string) int {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return i
		}
	}
	return -1
}

// UpsertEntity adds the entity, or replaces the existing entity with the
// same name. The entity must pass validation.
func (m *Model) UpsertEntity(e Entity) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid entity: %w", err)
	}
	if i := m.entityIndex(e.Name); i >= 0 {
		m.Entities[i] = e
		return nil
	}
	m.Entities = append(m.Entities, e)
	return nil
}

// RenameEntity renames an entity and rewrites every relationship endpoint
// that referenced the old name.
//
// Renaming to a name already in use fails with ErrEntityExists so two
// entities never collapse into one by accident.
func (m *Model) RenameEntity(oldName, newName string) error {
	if err := validation.ValidateIdentifier(newName); err != nil {
		return fmt.Errorf("invalid entity name: %w", err)
	}
	i := m.entityIndex(oldName)
	if i < 0 {
		return fmt.Errorf("%q: %w", oldName, ErrEntityNotFound)
	}
	if oldName == newName {
		return nil
	}
	if m.HasEntity(newName) {
		return fmt.Errorf("%q: %w", newName, ErrEntityExists)
	}
	m.Entities[i].Name = newName
	for j := range m.Relationships {
		if m.Relationships[j].Source == oldName {
			m.Relationships[j].Source = newName
		}
		if m.Relationships[j].Target == oldName {
			m.Relationships[j].Target = newName
		}
	}
	return nil
}

// RemoveEntity removes an entity and drops every relationship that has it
// as source or target. Returns the number of relationships dropped.
func (m *Model) RemoveEntity(name string) (int, error) {
	i := m.entityIndex(name)
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrEntityNotFound)
	}
	m.Entities = append(m.Entities[:i], m.Entities[i+1:]...)

	kept := m.Relationships[:0]
	dropped := 0
	for _, r := range m.Relationships {
		if r.Source == name || r.Target == name {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	m.Relationships = kept
	return dropped, nil
}

// AddRelationship appends a relationship after checking that both
// endpoints exist and that the kind is one of the supported five.
func (m *Model) AddRelationship(r Relationship) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid relationship: %w", err)
	}
	if !IsRelationshipKind(r.Type) {
		return fmt.Errorf("%q: %w", r.Type, ErrUnknownRelationshipKind)
	}
	if !m.HasEntity(r.Source) {
		return fmt.Errorf("source %q: %w", r.Source, ErrEntityNotFound)
	}
	if !m.HasEntity(r.Target) {
		return fmt.Errorf("target %q: %w", r.Target, ErrEntityNotFound)
	}
	m.Relationships = append(m.Relationships, r)
	return nil
}

// RemoveRelationship removes the relationship at index i.
func (m *Model) RemoveRelationship(i int) error {
	if i < 0 || i >= len(m.Relationships) {
		return fmt.Errorf("relationship index %d out of range", i)
	}
	m.Relationships = append(m.Relationships[:i], m.Relationships[i+1:]...)
	return nil
}
