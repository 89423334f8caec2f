// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers contains the Gin handlers for the modeler HTTP API.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ag-Linings/uml-diagram/services/extract"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
)

// ProcessSpecs handles POST /process-specs: free-text description in,
// extracted model plus enhanced description out.
func ProcessSpecs(extractor *extract.Extractor, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req datatypes.ProcessSpecsRequest
		if err := c.BindJSON(&req); err != nil {
			metrics.RecordRequest(observability.EndpointProcessSpecs, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			metrics.RecordRequest(observability.EndpointProcessSpecs, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := extractor.Process(c.Request.Context(), req.Description)
		if err != nil {
			slog.Error("extraction failed", "error", err)
			metrics.RecordRequest(observability.EndpointProcessSpecs, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process description"})
			return
		}

		slog.Info("description processed",
			"entities", len(resp.Entities),
			"relationships", len(resp.Relationships),
			"source", resp.Source)
		metrics.RecordRequest(observability.EndpointProcessSpecs, true)
		metrics.RecordExtraction(resp.Source, len(resp.Entities))
		metrics.RecordDuration(observability.EndpointProcessSpecs, time.Since(start).Seconds())

		c.JSON(http.StatusOK, resp)
	}
}
