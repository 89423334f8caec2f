// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// Enhancer produces the human-readable "enhanced description" for an
// extracted model. The heuristic template enhancer is always available;
// an LLM-backed enhancer (see OpenAIEnhancer) can be layered on top.
type Enhancer interface {
	// Enhance returns the enhanced description for the model extracted
	// from description. Implementations must not mutate the model.
	Enhance(ctx context.Context, description string, model *datatypes.Model) (string, error)
}

// Extractor turns free-text descriptions into entity/relationship models.
//
// Safe for concurrent use. The lexicon can be swapped at runtime via
// SetLexicon; Process always works against a consistent snapshot.
type Extractor struct {
	mu       sync.RWMutex
	lex      *Lexicon
	enhancer Enhancer
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithEnhancer installs an optional LLM enhancer. When the enhancer
// fails, Process logs the error and falls back to the template text.
func WithEnhancer(e Enhancer) Option {
	return func(x *Extractor) { x.enhancer = e }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(x *Extractor) { x.logger = l }
}

// New creates an Extractor. A nil lexicon means DefaultLexicon().
func New(lex *Lexicon, opts ...Option) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	x := &Extractor{lex: lex, logger: slog.Default()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// SetLexicon replaces the lexicon. Used by the file watcher for hot
// reloads; in-flight Process calls keep their old snapshot.
func (x *Extractor) SetLexicon(lex *Lexicon) {
	if lex == nil {
		return
	}
	x.mu.Lock()
	x.lex = lex
	x.mu.Unlock()
}

func (x *Extractor) lexicon() *Lexicon {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.lex
}

// Process derives a model from the description.
//
// Candidate class names are resolved in order:
//  1. capitalized words longer than three characters, in order of first
//     appearance
//  2. any non-stopword longer than three characters, capitalized, capped
//     at MaxCandidates
//  3. a canned domain template (university, e-commerce) when the
//     description names one
//  4. the domain dictionaries, then the generic fallback set
//
// The result always contains at least two entities and, given two or
// more entities, at least one relationship.
func (x *Extractor) Process(ctx context.Context, description string) (*datatypes.ProcessSpecsResponse, error) {
	lex := x.lexicon()
	lower := strings.ToLower(description)

	source := "words"
	names := capitalizedWords(description)
	if len(names) < 2 {
		source = "fallback_words"
		names = fallbackWords(description, lex)
	}
	if len(names) < 2 {
		if tpl := matchTemplate(lower); tpl != nil {
			resp := x.finish(ctx, description, tpl.Model(), tpl.EnhancedDescription(description))
			resp.Source = "template"
			return resp, nil
		}
		names, source = domainClasses(lower, lex)
	}

	model := &datatypes.Model{}
	for _, name := range names {
		model.Entities = append(model.Entities, buildEntity(name, lower, lex))
	}
	model.Relationships = inferRelationships(model.Entities, lower, lex)

	resp := x.finish(ctx, description, model, describeModel(model))
	resp.Source = source
	return resp, nil
}

// finish applies the optional LLM enhancer on top of the template text.
func (x *Extractor) finish(ctx context.Context, description string, model *datatypes.Model, enhanced string) *datatypes.ProcessSpecsResponse {
	if x.enhancer != nil {
		text, err := x.enhancer.Enhance(ctx, description, model)
		if err != nil {
			x.logger.Warn("enhancer failed, using template description", "error", err)
		} else if text != "" {
			enhanced = text
		}
	}
	return &datatypes.ProcessSpecsResponse{
		EnhancedDescription: enhanced,
		Entities:            model.Entities,
		Relationships:       model.Relationships,
	}
}

// =============================================================================
// Candidate Class Names
// =============================================================================

// tokenize splits on whitespace after stripping sentence punctuation.
func tokenize(description string) []string {
	cleaned := strings.NewReplacer(".", " ", ",", " ").Replace(description)
	return strings.Fields(cleaned)
}

// capitalizedWords returns unique capitalized words longer than three
// characters, in order of first appearance.
func capitalizedWords(description string) []string {
	var names []string
	seen := map[string]bool{}
	for _, word := range tokenize(description) {
		if len(word) <= 3 || seen[word] {
			continue
		}
		first := []rune(word)[0]
		if !unicode.IsUpper(first) {
			continue
		}
		if !isSafeName(word) {
			continue
		}
		seen[word] = true
		names = append(names, word)
	}
	return names
}

// fallbackWords capitalizes any non-stopword longer than three characters,
// capped at lex.MaxCandidates.
func fallbackWords(description string, lex *Lexicon) []string {
	stop := map[string]bool{}
	for _, w := range lex.Stopwords {
		stop[w] = true
	}

	var names []string
	seen := map[string]bool{}
	for _, word := range tokenize(description) {
		if len(names) >= lex.MaxCandidates {
			break
		}
		lower := strings.ToLower(word)
		if len(word) <= 3 || stop[lower] || seen[lower] {
			continue
		}
		name := capitalize(word)
		if !isSafeName(name) {
			continue
		}
		seen[lower] = true
		names = append(names, name)
	}
	return names
}

// domainClasses picks a domain dictionary by keyword occurrence, falling
// back to the generic class set. Domain keys are scanned in sorted order
// so the choice is deterministic when several domains match. The second
// return names the path taken, for metrics.
func domainClasses(lower string, lex *Lexicon) ([]string, string) {
	for _, key := range sortedKeys(lex.Domains) {
		if strings.Contains(lower, key) {
			return lex.Domains[key], "domain"
		}
	}
	return lex.Fallback, "fallback"
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// isSafeName filters tokens that would break the generated diagram syntax
// (digits-first words, embedded punctuation that survived tokenizing).
func isSafeName(word string) bool {
	for i, r := range word {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return word != ""
}

// =============================================================================
// Entity Construction
// =============================================================================

func anyCue(lower string, cues []string) bool {
	for _, kw := range cues {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// buildEntity seeds an entity with an id, a name attribute, and whatever
// the keyword cues add on top.
func buildEntity(name, lower string, lex *Lexicon) datatypes.Entity {
	attrs := []datatypes.Attribute{
		{Name: "id", Type: "string", Visibility: datatypes.VisibilityPrivate},
		{Name: strings.ToLower(name) + "Name", Type: "string", Visibility: datatypes.VisibilityPrivate},
	}
	if anyCue(lower, lex.Cues.Timestamp) {
		attrs = append(attrs, datatypes.Attribute{Name: "createdAt", Type: "Date", Visibility: datatypes.VisibilityPrivate})
	}
	if anyCue(lower, lex.Cues.Price) {
		attrs = append(attrs, datatypes.Attribute{Name: "price", Type: "number", Visibility: datatypes.VisibilityPrivate})
	}
	if anyCue(lower, lex.Cues.Status) {
		attrs = append(attrs, datatypes.Attribute{Name: "status", Type: "string", Visibility: datatypes.VisibilityPrivate})
	}

	methods := []datatypes.Method{
		{Name: "get" + name, ReturnType: name, Parameters: []datatypes.Parameter{}, Visibility: datatypes.VisibilityPublic},
	}
	if anyCue(lower, lex.Cues.Update) {
		methods = append(methods, datatypes.Method{
			Name:       "update" + name,
			ReturnType: "boolean",
			Parameters: []datatypes.Parameter{{Name: "data", Type: name}},
			Visibility: datatypes.VisibilityPublic,
		})
	}
	if anyCue(lower, lex.Cues.Delete) {
		methods = append(methods, datatypes.Method{
			Name:       "delete" + name,
			ReturnType: "void",
			Parameters: []datatypes.Parameter{{Name: "id", Type: "string"}},
			Visibility: datatypes.VisibilityPublic,
		})
	}
	if anyCue(lower, lex.Cues.Validate) {
		methods = append(methods, datatypes.Method{
			Name:       "validate",
			ReturnType: "boolean",
			Parameters: []datatypes.Parameter{},
			Visibility: datatypes.VisibilityPublic,
		})
	}

	return datatypes.Entity{Name: name, Attributes: attrs, Methods: methods}
}

// =============================================================================
// Relationship Inference
// =============================================================================

// inferRelationships pairs entities positionally, picking edge kinds from
// the keyword cues. The pairing rules are fixed: first-to-second, then
// first-to-third, and so on, so the same description always yields the
// same graph.
func inferRelationships(entities []datatypes.Entity, lower string, lex *Lexicon) []datatypes.Relationship {
	if len(entities) < 2 {
		return nil
	}

	hasAssociation := anyCue(lower, lex.Cues.Association)
	hasInheritance := anyCue(lower, lex.Cues.Inheritance)
	hasDependency := anyCue(lower, lex.Cues.Dependency)
	hasAggregation := anyCue(lower, lex.Cues.Aggregation)

	firstKind := datatypes.RelAssociation
	if !hasAssociation && hasDependency {
		firstKind = datatypes.RelDependency
	}
	rels := []datatypes.Relationship{
		{Source: entities[0].Name, Target: entities[1].Name, Type: firstKind},
	}

	if len(entities) >= 3 {
		if hasAggregation {
			rels = append(rels, datatypes.Relationship{
				Source: entities[0].Name, Target: entities[2].Name,
				Type: datatypes.RelAggregation, Label: "contains",
			})
		} else {
			rels = append(rels, datatypes.Relationship{
				Source: entities[0].Name, Target: entities[2].Name,
				Type: datatypes.RelDependency, Label: "uses",
			})
		}
	}

	if len(entities) >= 4 {
		if hasInheritance {
			rels = append(rels, datatypes.Relationship{
				Source: entities[3].Name, Target: entities[1].Name,
				Type: datatypes.RelInheritance,
			})
		} else {
			rels = append(rels, datatypes.Relationship{
				Source: entities[2].Name, Target: entities[3].Name,
				Type: datatypes.RelAssociation, Label: "relates to",
			})
		}
	}

	if len(entities) >= 5 {
		rels = append(rels, datatypes.Relationship{
			Source: entities[4].Name, Target: entities[0].Name,
			Type: datatypes.RelComposition, Label: "part of",
		})
	}

	return rels
}

// =============================================================================
// Enhanced Description
// =============================================================================

// describeModel renders the template enhanced description for a model.
func describeModel(m *datatypes.Model) string {
	var b strings.Builder

	names := make([]string, len(m.Entities))
	for i, e := range m.Entities {
		names[i] = e.Name
	}
	fmt.Fprintf(&b, "\nSystem Description:\n\nThis system comprises %d main entities: %s.\n\n",
		len(m.Entities), strings.Join(names, ", "))

	for _, e := range m.Entities {
		fmt.Fprintf(&b, "%s: Contains %d attributes and %d methods for data management.\n",
			e.Name, len(e.Attributes), len(e.Methods))
	}

	b.WriteString("\nRelationships:\n")
	for _, r := range m.Relationships {
		b.WriteString(relationshipSentence(r))
		if r.Label != "" {
			fmt.Fprintf(&b, " (%s)", r.Label)
		}
		b.WriteString(".\n")
	}

	b.WriteString("\nThis model represents a simplified interpretation of the system based on the input description.")
	return b.String()
}

func relationshipSentence(r datatypes.Relationship) string {
	switch r.Type {
	case datatypes.RelAssociation:
		return fmt.Sprintf("%s is associated with %s", r.Source, r.Target)
	case datatypes.RelInheritance:
		return fmt.Sprintf("%s inherits from %s", r.Source, r.Target)
	case datatypes.RelComposition:
		return fmt.Sprintf("%s is composed of %s", r.Source, r.Target)
	case datatypes.RelAggregation:
		return fmt.Sprintf("%s contains %s", r.Source, r.Target)
	case datatypes.RelDependency:
		return fmt.Sprintf("%s depends on %s", r.Source, r.Target)
	default:
		return fmt.Sprintf("%s relates to %s", r.Source, r.Target)
	}
}
