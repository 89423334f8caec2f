// Copyright (C) 2025 Ag Linings
// Tests for heuristic model extraction.

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

func entityNames(entities []datatypes.Entity) []string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	return names
}

// =============================================================================
// Candidate Name Selection
// =============================================================================

func TestProcess_CapitalizedWords(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "The Library lends Books to registered Members.")
	require.NoError(t, err)

	assert.Equal(t, []string{"Library", "Books", "Members"}, entityNames(resp.Entities))
}

func TestProcess_CapitalizedWordsDeduplicated(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Orders and Orders and Customers")
	require.NoError(t, err)

	assert.Equal(t, []string{"Orders", "Customers"}, entityNames(resp.Entities))
}

func TestProcess_LowercaseFallback(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "track orders and customers daily")
	require.NoError(t, err)

	// Non-stopwords longer than three chars, capitalized, in order.
	assert.Equal(t, []string{"Track", "Orders", "Customers", "Daily"}, entityNames(resp.Entities))
}

func TestProcess_FallbackCappedAtMaxCandidates(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(),
		"alpha bravo charlie delta echo foxtrot golf hotel india")
	require.NoError(t, err)

	assert.Len(t, resp.Entities, DefaultLexicon().MaxCandidates)
}

func TestProcess_DomainDictionary(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "a shop")
	require.NoError(t, err)

	assert.Equal(t, []string{"Product", "Customer", "Order", "ShoppingCart"}, entityNames(resp.Entities))
}

func TestProcess_GenericFallback(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "an app")
	require.NoError(t, err)

	assert.Equal(t, []string{"User", "System", "Data", "Manager"}, entityNames(resp.Entities))
}

func TestProcess_AlwaysAtLeastTwoEntities(t *testing.T) {
	x := New(nil)

	for _, desc := range []string{"", "x", "an app", "Library"} {
		resp, err := x.Process(context.Background(), desc)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(resp.Entities), 2, "description %q", desc)
		assert.NotEmpty(t, resp.Relationships, "description %q", desc)
	}
}

// =============================================================================
// Templates
// =============================================================================

func TestProcess_UniversityTemplate(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "a university")
	require.NoError(t, err)

	assert.Equal(t, []string{"Student", "Professor", "Course"}, entityNames(resp.Entities))
	require.Len(t, resp.Relationships, 2)
	assert.Equal(t, "enrolls", resp.Relationships[0].Label)
	assert.Contains(t, resp.EnhancedDescription, "university management system")
}

func TestProcess_CommerceTemplate(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "commerce")
	require.NoError(t, err)

	assert.Equal(t, []string{"Product", "Customer", "Order"}, entityNames(resp.Entities))
	assert.Equal(t, datatypes.RelAggregation, resp.Relationships[1].Type)
}

func TestProcess_CapitalizedWordsBeatTemplates(t *testing.T) {
	x := New(nil)

	// Real class names in the text win over the canned university model.
	resp, err := x.Process(context.Background(), "The University tracks Departments and Budgets")
	require.NoError(t, err)

	assert.Equal(t, []string{"University", "Departments", "Budgets"}, entityNames(resp.Entities))
}

// =============================================================================
// Attribute and Method Cues
// =============================================================================

func TestProcess_SeededAttributesAndMethods(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Drivers deliver Parcels")
	require.NoError(t, err)

	e := resp.Entities[0]
	require.Len(t, e.Attributes, 2)
	assert.Equal(t, "id", e.Attributes[0].Name)
	assert.Equal(t, "driversName", e.Attributes[1].Name)
	assert.Equal(t, datatypes.VisibilityPrivate, e.Attributes[0].Visibility)

	require.Len(t, e.Methods, 1)
	assert.Equal(t, "getDrivers", e.Methods[0].Name)
	assert.Equal(t, "Drivers", e.Methods[0].ReturnType)
}

func TestProcess_CueDrivenExtras(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(),
		"Sellers update Listings with price and status, and can delete expired ones")
	require.NoError(t, err)

	e := resp.Entities[0]
	attrNames := []string{}
	for _, a := range e.Attributes {
		attrNames = append(attrNames, a.Name)
	}
	assert.Contains(t, attrNames, "price")
	assert.Contains(t, attrNames, "status")

	methodNames := []string{}
	for _, m := range e.Methods {
		methodNames = append(methodNames, m.Name)
	}
	assert.Contains(t, methodNames, "updateSellers")
	assert.Contains(t, methodNames, "deleteSellers")
}

// =============================================================================
// Relationship Inference
// =============================================================================

func TestProcess_TwoEntitiesDependencyCue(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Billing requires Ledger")
	require.NoError(t, err)

	require.Len(t, resp.Relationships, 1)
	r := resp.Relationships[0]
	assert.Equal(t, "Billing", r.Source)
	assert.Equal(t, "Ledger", r.Target)
	assert.Equal(t, datatypes.RelDependency, r.Type)
}

func TestProcess_AssociationCueWinsOverDependency(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Billing has and requires Ledger")
	require.NoError(t, err)

	assert.Equal(t, datatypes.RelAssociation, resp.Relationships[0].Type)
}

func TestProcess_FourEntitiesWithInheritance(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(),
		"Truck extends Vehicle and uses Garage and Mechanic")
	require.NoError(t, err)

	require.Len(t, resp.Entities, 4)
	require.Len(t, resp.Relationships, 3)
	inh := resp.Relationships[2]
	assert.Equal(t, datatypes.RelInheritance, inh.Type)
	assert.Equal(t, resp.Entities[3].Name, inh.Source)
	assert.Equal(t, resp.Entities[1].Name, inh.Target)
}

func TestProcess_FiveEntitiesComposition(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Engine Wheel Chassis Frame Cabin")
	require.NoError(t, err)

	require.Len(t, resp.Entities, 5)
	last := resp.Relationships[len(resp.Relationships)-1]
	assert.Equal(t, datatypes.RelComposition, last.Type)
	assert.Equal(t, "Cabin", last.Source)
	assert.Equal(t, "Engine", last.Target)
	assert.Equal(t, "part of", last.Label)
}

func TestProcess_NoDanglingRelationships(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Orders consist of Items and Shipments")
	require.NoError(t, err)

	m := &datatypes.Model{Entities: resp.Entities, Relationships: resp.Relationships}
	assert.NoError(t, m.Validate())
}

// =============================================================================
// Enhanced Description
// =============================================================================

func TestProcess_EnhancedDescriptionShape(t *testing.T) {
	x := New(nil)

	resp, err := x.Process(context.Background(), "Customers place Orders")
	require.NoError(t, err)

	assert.Contains(t, resp.EnhancedDescription, "This system comprises 2 main entities: Customers, Orders.")
	assert.Contains(t, resp.EnhancedDescription, "Customers: Contains 2 attributes and 1 methods for data management.")
	assert.Contains(t, resp.EnhancedDescription, "Relationships:")
	assert.Contains(t, resp.EnhancedDescription, "simplified interpretation")
}

// =============================================================================
// Enhancer Integration
// =============================================================================

type stubEnhancer struct {
	text string
	err  error
}

func (s *stubEnhancer) Enhance(_ context.Context, _ string, _ *datatypes.Model) (string, error) {
	return s.text, s.err
}

func TestProcess_EnhancerOverridesTemplateText(t *testing.T) {
	x := New(nil, WithEnhancer(&stubEnhancer{text: "A crisp architectural summary."}))

	resp, err := x.Process(context.Background(), "Customers place Orders")
	require.NoError(t, err)

	assert.Equal(t, "A crisp architectural summary.", resp.EnhancedDescription)
}

func TestProcess_EnhancerFailureFallsBack(t *testing.T) {
	x := New(nil, WithEnhancer(&stubEnhancer{err: errors.New("rate limited")}))

	resp, err := x.Process(context.Background(), "Customers place Orders")
	require.NoError(t, err)

	assert.Contains(t, resp.EnhancedDescription, "This system comprises")
}

// =============================================================================
// Lexicon Swapping
// =============================================================================

func TestSetLexicon_TakesEffect(t *testing.T) {
	x := New(nil)

	custom := DefaultLexicon()
	custom.Domains = map[string][]string{"garage": {"Car", "Mechanic"}}

	x.SetLexicon(custom)

	resp, err := x.Process(context.Background(), "my garage")
	require.NoError(t, err)
	assert.Equal(t, []string{"Car", "Mechanic"}, entityNames(resp.Entities))
}
