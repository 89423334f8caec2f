// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package mermaid renders entity/relationship models as Mermaid class
// diagram syntax (https://mermaid.js.org/syntax/classDiagram.html).
//
// The output is consumed verbatim by the frontend's Mermaid renderer, so
// the exact spacing and arrow forms are part of the API contract.
package mermaid

import (
	"strings"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// arrows maps relationship kinds to Mermaid arrow syntax. Unknown kinds
// fall back to the association arrow.
var arrows = map[string]string{
	datatypes.RelInheritance: "--|>",
	datatypes.RelComposition: "--*",
	datatypes.RelAggregation: "--o",
	datatypes.RelDependency:  "..>",
	datatypes.RelAssociation: "-->",
}

// ClassDiagram renders the given entities and relationships as a Mermaid
// classDiagram block.
//
// Visibility markers follow UML notation: "-" private, "#" protected, "+"
// for public and anything unrecognized. An empty model renders as a bare
// "classDiagram\n" header.
func ClassDiagram(entities []datatypes.Entity, relationships []datatypes.Relationship) string {
	var b strings.Builder
	b.WriteString("classDiagram\n")

	for _, e := range entities {
		b.WriteString("  class ")
		b.WriteString(e.Name)
		b.WriteString(" {\n")

		for _, a := range e.Attributes {
			b.WriteString("    ")
			b.WriteString(visibilityMarker(a.Visibility))
			b.WriteString(a.Name)
			b.WriteString(" : ")
			b.WriteString(a.Type)
			b.WriteString("\n")
		}

		for _, m := range e.Methods {
			b.WriteString("    ")
			b.WriteString(visibilityMarker(m.Visibility))
			b.WriteString(m.Name)
			b.WriteString("(")
			b.WriteString(paramList(m.Parameters))
			b.WriteString(") ")
			b.WriteString(m.ReturnType)
			b.WriteString("\n")
		}

		b.WriteString("  }\n")
	}

	for _, r := range relationships {
		arrow, ok := arrows[r.Type]
		if !ok {
			arrow = arrows[datatypes.RelAssociation]
		}
		b.WriteString("  ")
		b.WriteString(r.Source)
		b.WriteString(" ")
		b.WriteString(arrow)
		b.WriteString(" ")
		b.WriteString(r.Target)
		if r.Label != "" {
			b.WriteString(" : ")
			b.WriteString(r.Label)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func visibilityMarker(visibility string) string {
	switch visibility {
	case datatypes.VisibilityPrivate:
		return "-"
	case datatypes.VisibilityProtected:
		return "#"
	default:
		return "+"
	}
}

func paramList(params []datatypes.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type
	}
	return strings.Join(parts, ", ")
}
