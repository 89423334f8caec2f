// Copyright (C) 2025 Ag Linings
// Tests for Mermaid class diagram rendering.

package mermaid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

func TestClassDiagram_EmptyModel(t *testing.T) {
	assert.Equal(t, "classDiagram\n", ClassDiagram(nil, nil))
}

func TestClassDiagram_FullEntity(t *testing.T) {
	entities := []datatypes.Entity{
		{
			Name: "Student",
			Attributes: []datatypes.Attribute{
				{Name: "id", Type: "int", Visibility: "private"},
				{Name: "gpa", Type: "float", Visibility: "protected"},
				{Name: "name", Type: "string", Visibility: "public"},
			},
			Methods: []datatypes.Method{
				{
					Name:       "enrollCourse",
					ReturnType: "boolean",
					Parameters: []datatypes.Parameter{
						{Name: "courseId", Type: "int"},
						{Name: "term", Type: "string"},
					},
					Visibility: "public",
				},
			},
		},
	}

	got := ClassDiagram(entities, nil)

	want := "classDiagram\n" +
		"  class Student {\n" +
		"    -id : int\n" +
		"    #gpa : float\n" +
		"    +name : string\n" +
		"    +enrollCourse(courseId: int, term: string) boolean\n" +
		"  }\n"
	assert.Equal(t, want, got)
}

func TestClassDiagram_UnsetVisibilityRendersPublic(t *testing.T) {
	entities := []datatypes.Entity{
		{Name: "User", Attributes: []datatypes.Attribute{{Name: "email", Type: "string"}}},
	}
	got := ClassDiagram(entities, nil)
	assert.Contains(t, got, "    +email : string\n")
}

func TestClassDiagram_RelationshipArrows(t *testing.T) {
	entities := []datatypes.Entity{{Name: "A"}, {Name: "B"}}

	tests := []struct {
		kind string
		want string
	}{
		{datatypes.RelAssociation, "  A --> B\n"},
		{datatypes.RelInheritance, "  A --|> B\n"},
		{datatypes.RelComposition, "  A --* B\n"},
		{datatypes.RelAggregation, "  A --o B\n"},
		{datatypes.RelDependency, "  A ..> B\n"},
		// Unknown kinds degrade to plain association.
		{"friendship", "  A --> B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rels := []datatypes.Relationship{{Source: "A", Target: "B", Type: tt.kind}}
			got := ClassDiagram(entities, rels)
			assert.True(t, strings.HasSuffix(got, tt.want), "got %q", got)
		})
	}
}

func TestClassDiagram_RelationshipLabel(t *testing.T) {
	entities := []datatypes.Entity{{Name: "Customer"}, {Name: "Order"}}
	rels := []datatypes.Relationship{
		{Source: "Customer", Target: "Order", Type: datatypes.RelAssociation, Label: "places"},
	}
	got := ClassDiagram(entities, rels)
	assert.Contains(t, got, "  Customer --> Order : places\n")
}

func TestClassDiagram_MethodWithoutParameters(t *testing.T) {
	entities := []datatypes.Entity{
		{
			Name: "Course",
			Methods: []datatypes.Method{
				{Name: "getEnrolledStudents", ReturnType: "List<Student>", Visibility: "public"},
			},
		},
	}
	got := ClassDiagram(entities, nil)
	assert.Contains(t, got, "    +getEnrolledStudents() List<Student>\n")
}
