// Copyright (C) 2025 Ag Linings
// Tests for the description processing endpoint.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ag-Linings/uml-diagram/services/extract"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func specsRouter() *gin.Engine {
	router := gin.New()
	router.POST("/process-specs", ProcessSpecs(extract.New(nil), nil))
	return router
}

func TestProcessSpecs_ExtractsEntities(t *testing.T) {
	router := specsRouter()

	w := postJSON(router, "/process-specs", datatypes.ProcessSpecsRequest{
		Description: "The Student enrolls in a Course taught by a Professor",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ProcessSpecsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Entities, 3)
	assert.Equal(t, "Student", resp.Entities[0].Name)
	assert.Equal(t, "Course", resp.Entities[1].Name)
	assert.Equal(t, "Professor", resp.Entities[2].Name)
	assert.NotEmpty(t, resp.Relationships)
	assert.Contains(t, resp.EnhancedDescription, "System Description:")
}

func TestProcessSpecs_EmptyDescription(t *testing.T) {
	router := specsRouter()

	w := postJSON(router, "/process-specs", datatypes.ProcessSpecsRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessSpecs_OversizeDescription(t *testing.T) {
	router := specsRouter()

	w := postJSON(router, "/process-specs", datatypes.ProcessSpecsRequest{
		Description: strings.Repeat("a", datatypes.MaxDescriptionBytes+1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessSpecs_MalformedJSON(t *testing.T) {
	router := specsRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/process-specs", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
