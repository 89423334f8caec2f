// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root handles GET /: a short service banner for anyone poking at the
// API by hand.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "UML Diagram Generator API",
		"docs":    "/uml-history, /process-specs, /generate-uml, /save-uml",
	})
}

// HealthCheck handles GET /health for container probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
