// Copyright (C) 2025 Ag Linings
// Tests for the save and history endpoints.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

func historyRouter(t *testing.T) (*gin.Engine, *store.DiagramStore) {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	router := gin.New()
	router.POST("/save-uml", SaveUML(s, nil))
	router.GET("/uml-history", History(s, nil))
	router.GET("/uml-history/:id", GetDiagram(s, nil))
	router.DELETE("/uml-history/:id", DeleteDiagram(s, nil))
	return router, s
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func saveUMLRequest(title string) datatypes.SaveUMLRequest {
	return datatypes.SaveUMLRequest{
		Title:     title,
		UMLSyntax: "classDiagram\n  class Student {\n  }\n",
		Entities:  sampleEntities(),
	}
}

func TestSaveUML_ReturnsID(t *testing.T) {
	router, _ := historyRouter(t)

	w := postJSON(router, "/save-uml", saveUMLRequest("My Diagram"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.SaveUMLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ID)
}

func TestSaveUML_MissingSyntax(t *testing.T) {
	router, _ := historyRouter(t)

	req := saveUMLRequest("bad")
	req.UMLSyntax = ""
	w := postJSON(router, "/save-uml", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_NewestFirst(t *testing.T) {
	router, _ := historyRouter(t)

	require.Equal(t, http.StatusOK, postJSON(router, "/save-uml", saveUMLRequest("first")).Code)
	require.Equal(t, http.StatusOK, postJSON(router, "/save-uml", saveUMLRequest("second")).Code)

	w := getPath(router, "/uml-history")
	require.Equal(t, http.StatusOK, w.Code)

	var list []datatypes.UMLDiagram
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestHistory_EmptyIsArray(t *testing.T) {
	router, _ := historyRouter(t)

	w := getPath(router, "/uml-history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetDiagram_RegeneratesSyntax(t *testing.T) {
	router, _ := historyRouter(t)

	req := saveUMLRequest("stale")
	req.UMLSyntax = "classDiagram\n  class Outdated {\n  }\n"
	w := postJSON(router, "/save-uml", req)
	require.Equal(t, http.StatusOK, w.Code)

	var saved datatypes.SaveUMLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	got := getPath(router, "/uml-history/"+saved.ID)
	require.Equal(t, http.StatusOK, got.Code)

	var d datatypes.UMLDiagram
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &d))

	// The syntax is re-rendered from the stored entities, not echoed back.
	assert.Contains(t, d.UMLSyntax, "class Student {")
	assert.NotContains(t, d.UMLSyntax, "Outdated")
}

func TestGetDiagram_NotFound(t *testing.T) {
	router, _ := historyRouter(t)
	assert.Equal(t, http.StatusNotFound, getPath(router, "/uml-history/nope").Code)
}

func TestDeleteDiagram_RemovesFromHistory(t *testing.T) {
	router, _ := historyRouter(t)

	w := postJSON(router, "/save-uml", saveUMLRequest("doomed"))
	require.Equal(t, http.StatusOK, w.Code)

	var saved datatypes.SaveUMLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	del := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/uml-history/"+saved.ID, nil)
	router.ServeHTTP(del, req)
	assert.Equal(t, http.StatusOK, del.Code)

	assert.Equal(t, http.StatusNotFound, getPath(router, "/uml-history/"+saved.ID).Code)
}

func TestDeleteDiagram_NotFound(t *testing.T) {
	router, _ := historyRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/uml-history/nope", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
