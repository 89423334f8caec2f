// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ag-Linings/uml-diagram/services/mermaid"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
)

// GenerateUML handles POST /generate-uml: entities and relationships in,
// Mermaid class-diagram syntax out. Rendering is pure, so the only
// failure mode is a bad request.
func GenerateUML(metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req datatypes.GenerateUMLRequest
		if err := c.BindJSON(&req); err != nil {
			metrics.RecordRequest(observability.EndpointGenerateUML, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			metrics.RecordRequest(observability.EndpointGenerateUML, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		syntax := mermaid.ClassDiagram(req.Entities, req.Relationships)

		metrics.RecordRequest(observability.EndpointGenerateUML, true)
		metrics.RecordDuration(observability.EndpointGenerateUML, time.Since(start).Seconds())

		c.JSON(http.StatusOK, datatypes.GenerateUMLResponse{UMLSyntax: syntax})
	}
}
