// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ag-Linings/uml-diagram/services/modeler/backup"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
)

// Backup handles POST /admin/backup: writes one history snapshot and
// reports where it landed.
func Backup(snapshotter *backup.Snapshotter, metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := snapshotter.Run(c.Request.Context())
		if err != nil {
			slog.Error("backup failed", "error", err)
			metrics.RecordRequest(observability.EndpointBackup, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "backup failed"})
			return
		}

		metrics.RecordRequest(observability.EndpointBackup, true)
		c.JSON(http.StatusOK, resp)
	}
}
