// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package extract derives entity/relationship models from free-text system
// descriptions.
//
// The extraction is deliberately heuristic: capitalization checks, keyword
// cues and domain dictionaries. There is no grammar and no ambiguity
// resolution; the output is a starting point the user refines in the
// editor. The keyword tables live in a Lexicon so deployments can extend
// them without a rebuild (see LoadLexicon and Watcher).
package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cues groups the keyword lists that trigger extra attributes, CRUD
// methods and relationship kinds. Matching is case-insensitive substring
// matching against the whole description.
type Cues struct {
	// Attribute cues.
	Timestamp []string `yaml:"timestamp"`
	Price     []string `yaml:"price"`
	Status    []string `yaml:"status"`

	// Method cues.
	Update   []string `yaml:"update"`
	Delete   []string `yaml:"delete"`
	Validate []string `yaml:"validate"`

	// Relationship cues.
	Association []string `yaml:"association"`
	Inheritance []string `yaml:"inheritance"`
	Dependency  []string `yaml:"dependency"`
	Aggregation []string `yaml:"aggregation"`
}

// Lexicon holds every tunable table the extractor consults.
type Lexicon struct {
	// Stopwords are excluded from the capitalized-word fallback scan.
	Stopwords []string `yaml:"stopwords"`

	// Domains maps a trigger keyword to the class names seeded when the
	// description mentions that domain and no candidates were found.
	Domains map[string][]string `yaml:"domains"`

	// Cues are the attribute/method/relationship keyword groups.
	Cues Cues `yaml:"cues"`

	// Fallback is the generic class set used when nothing else matched.
	Fallback []string `yaml:"fallback"`

	// MaxCandidates caps how many class names the fallback word scan
	// may produce.
	MaxCandidates int `yaml:"max_candidates"`
}

// DefaultLexicon returns the compiled-in tables.
//
// These values define the baseline extraction behavior; a lexicon file
// overrides whole sections, never individual entries.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Stopwords: []string{
			"the", "and", "a", "an", "with", "for", "to", "in", "on", "at", "by", "of",
		},
		Domains: map[string][]string{
			"shop":      {"Product", "Customer", "Order", "ShoppingCart"},
			"education": {"Student", "Course", "Professor", "Assignment"},
			"hospital":  {"Patient", "Doctor", "Appointment", "Treatment"},
			"bank":      {"Account", "Customer", "Transaction", "Loan"},
			"library":   {"Book", "Member", "Librarian", "Borrowing"},
			"flight":    {"Flight", "Passenger", "Booking", "Ticket"},
		},
		Cues: Cues{
			Timestamp:   []string{"date", "time"},
			Price:       []string{"price", "cost"},
			Status:      []string{"status", "state"},
			Update:      []string{"update", "edit"},
			Delete:      []string{"delete", "remove"},
			Validate:    []string{"validate", "check"},
			Association: []string{"has", "with", "contains"},
			Inheritance: []string{"inherits", "extends", "type of"},
			Dependency:  []string{"uses", "depends", "requires"},
			Aggregation: []string{"consists", "comprises", "composed"},
		},
		Fallback:      []string{"User", "System", "Data", "Manager"},
		MaxCandidates: 6,
	}
}

// LoadLexicon reads a YAML lexicon file and overlays it on the defaults.
//
// Only non-empty sections of the file replace their default counterpart,
// so a file containing just a domains table keeps the default stopwords
// and cues.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	var file Lexicon
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}

	lex := DefaultLexicon()
	if len(file.Stopwords) > 0 {
		lex.Stopwords = file.Stopwords
	}
	if len(file.Domains) > 0 {
		lex.Domains = file.Domains
	}
	if len(file.Fallback) > 0 {
		lex.Fallback = file.Fallback
	}
	if file.MaxCandidates > 0 {
		lex.MaxCandidates = file.MaxCandidates
	}
	mergeCues(&lex.Cues, &file.Cues)

	return lex, nil
}

func mergeCues(dst, src *Cues) {
	if len(src.Timestamp) > 0 {
		dst.Timestamp = src.Timestamp
	}
	if len(src.Price) > 0 {
		dst.Price = src.Price
	}
	if len(src.Status) > 0 {
		dst.Status = src.Status
	}
	if len(src.Update) > 0 {
		dst.Update = src.Update
	}
	if len(src.Delete) > 0 {
		dst.Delete = src.Delete
	}
	if len(src.Validate) > 0 {
		dst.Validate = src.Validate
	}
	if len(src.Association) > 0 {
		dst.Association = src.Association
	}
	if len(src.Inheritance) > 0 {
		dst.Inheritance = src.Inheritance
	}
	if len(src.Dependency) > 0 {
		dst.Dependency = src.Dependency
	}
	if len(src.Aggregation) > 0 {
		dst.Aggregation = src.Aggregation
	}
}
