// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"fmt"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// Template is a fully specified canned model for a well-known domain.
// Templates are consulted only when the word scans produced no usable
// class names, before the domain dictionaries.
type Template struct {
	// Keywords trigger the template via substring match on the
	// lowercased description.
	Keywords []string

	// Summary completes "This system appears to be ..." in the
	// enhanced description.
	Summary string

	entities      []datatypes.Entity
	relationships []datatypes.Relationship
}

// Model returns a fresh copy of the template's model so callers can edit
// it without corrupting the template.
func (t *Template) Model() *datatypes.Model {
	m := &datatypes.Model{
		Entities:      make([]datatypes.Entity, len(t.entities)),
		Relationships: make([]datatypes.Relationship, len(t.relationships)),
	}
	copy(m.Entities, t.entities)
	copy(m.Relationships, t.relationships)
	return m
}

// EnhancedDescription renders the template's enhanced description for the
// given input.
func (t *Template) EnhancedDescription(description string) string {
	return fmt.Sprintf("Enhanced: %s\n\nThis system appears to be %s.", description, t.Summary)
}

// matchTemplate returns the first template whose keyword occurs in the
// lowercased description, or nil.
func matchTemplate(lower string) *Template {
	for i := range templates {
		if anyCue(lower, templates[i].Keywords) {
			return &templates[i]
		}
	}
	return nil
}

func attr(name, typ string) datatypes.Attribute {
	return datatypes.Attribute{Name: name, Type: typ, Visibility: datatypes.VisibilityPrivate}
}

func method(name, ret string, params ...datatypes.Parameter) datatypes.Method {
	if params == nil {
		params = []datatypes.Parameter{}
	}
	return datatypes.Method{Name: name, ReturnType: ret, Parameters: params, Visibility: datatypes.VisibilityPublic}
}

// templates holds the canned domain models. "shop" and "store" are
// intentionally absent from the e-commerce keyword list: those words route
// to the leaner domain dictionary instead, which gives four editable stub
// classes rather than a fixed three-class model.
var templates = []Template{
	{
		Keywords: []string{"university", "school"},
		Summary:  "a university management system with students, courses, and professors",
		entities: []datatypes.Entity{
			{
				Name: "Student",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("name", "string"), attr("email", "string"),
				},
				Methods: []datatypes.Method{
					method("enrollCourse", "boolean", datatypes.Parameter{Name: "courseId", Type: "int"}),
				},
			},
			{
				Name: "Professor",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("name", "string"), attr("department", "string"),
				},
				Methods: []datatypes.Method{
					method("assignCourse", "void", datatypes.Parameter{Name: "courseId", Type: "int"}),
				},
			},
			{
				Name: "Course",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("title", "string"), attr("credits", "int"),
				},
				Methods: []datatypes.Method{
					method("getEnrolledStudents", "List<Student>"),
				},
			},
		},
		relationships: []datatypes.Relationship{
			{Source: "Student", Target: "Course", Type: datatypes.RelAssociation, Label: "enrolls"},
			{Source: "Professor", Target: "Course", Type: datatypes.RelAssociation, Label: "teaches"},
		},
	},
	{
		Keywords: []string{"commerce"},
		Summary:  "an e-commerce platform with products, customers, and orders",
		entities: []datatypes.Entity{
			{
				Name: "Product",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("name", "string"), attr("price", "decimal"),
				},
				Methods: []datatypes.Method{
					method("getInventory", "int"),
				},
			},
			{
				Name: "Customer",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("name", "string"), attr("email", "string"),
				},
				Methods: []datatypes.Method{
					method("placeOrder", "Order", datatypes.Parameter{Name: "products", Type: "List<Product>"}),
				},
			},
			{
				Name: "Order",
				Attributes: []datatypes.Attribute{
					attr("id", "int"), attr("date", "datetime"), attr("total", "decimal"),
				},
				Methods: []datatypes.Method{
					method("getOrderItems", "List<OrderItem>"),
				},
			},
		},
		relationships: []datatypes.Relationship{
			{Source: "Customer", Target: "Order", Type: datatypes.RelAssociation, Label: "places"},
			{Source: "Order", Target: "Product", Type: datatypes.RelAggregation, Label: "contains"},
		},
	},
}
