// Copyright (C) 2025 Ag Linings
// End-to-end tests for the API client against an in-process service.

package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ag-Linings/uml-diagram/services/extract"
	"github.com/Ag-Linings/uml-diagram/services/modeler/backup"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/routes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startTestService(t *testing.T) *APIClient {
	t.Helper()

	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	router := gin.New()
	routes.SetupRoutes(router, routes.Dependencies{
		Extractor:   extract.New(nil),
		Diagrams:    s,
		Snapshotter: backup.NewSnapshotter(s, &backup.LocalBackend{Dir: t.TempDir()}, nil),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL)
}

func TestClient_ProcessSpecs(t *testing.T) {
	client := startTestService(t)

	resp, err := client.ProcessSpecs(context.Background(),
		"The Student enrolls in a Course taught by a Professor")
	require.NoError(t, err)

	require.Len(t, resp.Entities, 3)
	assert.Equal(t, "Student", resp.Entities[0].Name)
}

func TestClient_ExtractRenderSaveRoundTrip(t *testing.T) {
	client := startTestService(t)
	ctx := context.Background()

	extracted, err := client.ProcessSpecs(ctx, "The Customer places an Order for a Product")
	require.NoError(t, err)

	model := datatypes.Model{
		Entities:      extracted.Entities,
		Relationships: extracted.Relationships,
	}
	syntax, err := client.GenerateUML(ctx, model)
	require.NoError(t, err)
	assert.Contains(t, syntax, "classDiagram\n")

	id, err := client.SaveUML(ctx, datatypes.SaveUMLRequest{
		Title:         "Shop",
		UMLSyntax:     syntax,
		Entities:      model.Entities,
		Relationships: model.Relationships,
	})
	require.NoError(t, err)

	saved, err := client.GetDiagram(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shop", saved.Title)
	assert.Contains(t, saved.UMLSyntax, "class Customer {")

	list, err := client.History(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, client.DeleteDiagram(ctx, id))
	list, err = client.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_ErrorsCarryServerMessage(t *testing.T) {
	client := startTestService(t)

	_, err := client.GetDiagram(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagram not found")
}

func TestClient_Backup(t *testing.T) {
	client := startTestService(t)

	resp, err := client.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Diagrams)
	assert.NotEmpty(t, resp.Location)
}
