// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ag-Linings/uml-diagram/services/mermaid"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

// SaveUML handles POST /save-uml: persists a diagram and acknowledges
// with its assigned id.
func SaveUML(diagrams *store.DiagramStore, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.SaveUMLRequest
		if err := c.BindJSON(&req); err != nil {
			metrics.RecordRequest(observability.EndpointSaveUML, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			metrics.RecordRequest(observability.EndpointSaveUML, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		saved, err := diagrams.Save(c.Request.Context(), req)
		if err != nil {
			slog.Error("failed to save diagram", "error", err)
			metrics.RecordRequest(observability.EndpointSaveUML, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save diagram"})
			return
		}

		if n, err := diagrams.Count(c.Request.Context()); err == nil {
			metrics.SetSavedDiagrams(n)
		}
		metrics.RecordRequest(observability.EndpointSaveUML, true)

		c.JSON(http.StatusOK, datatypes.SaveUMLResponse{ID: saved.ID, Success: true})
	}
}

// History handles GET /uml-history: every saved diagram, newest first.
func History(diagrams *store.DiagramStore, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := diagrams.List(c.Request.Context())
		if err != nil {
			slog.Error("failed to list diagrams", "error", err)
			metrics.RecordRequest(observability.EndpointHistory, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}

		metrics.RecordRequest(observability.EndpointHistory, true)
		c.JSON(http.StatusOK, list)
	}
}

// GetDiagram handles GET /uml-history/:id. The stored syntax may predate
// an edit to the model, so it is re-rendered from the entities when the
// diagram carries any.
func GetDiagram(diagrams *store.DiagramStore, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := diagrams.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordRequest(observability.EndpointHistory, false)
			c.JSON(http.StatusNotFound, gin.H{"error": "diagram not found"})
			return
		}
		if err != nil {
			slog.Error("failed to load diagram", "id", c.Param("id"), "error", err)
			metrics.RecordRequest(observability.EndpointHistory, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diagram"})
			return
		}

		if len(d.Entities) > 0 {
			d.UMLSyntax = mermaid.ClassDiagram(d.Entities, d.Relationships)
		}

		metrics.RecordRequest(observability.EndpointHistory, true)
		c.JSON(http.StatusOK, d)
	}
}

// DeleteDiagram handles DELETE /uml-history/:id.
func DeleteDiagram(diagrams *store.DiagramStore, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := diagrams.Delete(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordRequest(observability.EndpointHistory, false)
			c.JSON(http.StatusNotFound, gin.H{"error": "diagram not found"})
			return
		}
		if err != nil {
			slog.Error("failed to delete diagram", "id", id, "error", err)
			metrics.RecordRequest(observability.EndpointHistory, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete diagram"})
			return
		}

		if n, err := diagrams.Count(c.Request.Context()); err == nil {
			metrics.SetSavedDiagrams(n)
		}
		metrics.RecordRequest(observability.EndpointHistory, true)

		c.JSON(http.StatusOK, gin.H{"id": id, "success": true})
	}
}
