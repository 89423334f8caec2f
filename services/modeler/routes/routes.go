// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package routes registers the modeler HTTP API on a Gin engine.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ag-Linings/uml-diagram/services/extract"
	"github.com/Ag-Linings/uml-diagram/services/modeler/backup"
	"github.com/Ag-Linings/uml-diagram/services/modeler/handlers"
	"github.com/Ag-Linings/uml-diagram/services/modeler/middleware"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

// Dependencies carries everything the handlers need. Snapshotter may be
// nil to disable the backup endpoint; Metrics and RateLimiter may be nil
// in tests.
type Dependencies struct {
	Extractor   *extract.Extractor
	Diagrams    *store.DiagramStore
	Snapshotter *backup.Snapshotter
	Metrics     *observability.ModelerMetrics
	RateLimiter *middleware.RateLimiter
}

// SetupRoutes registers all routes on the engine. The rate limiter
// covers only the mutating endpoints: liveness probes and metrics
// scrapes must not be throttled away under client load.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.CORS())

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/uml-history", handlers.History(deps.Diagrams, deps.Metrics))
	router.GET("/uml-history/:id", handlers.GetDiagram(deps.Diagrams, deps.Metrics))

	router.GET("/ws/preview", handlers.Preview(deps.Metrics))

	mutating := router.Group("/")
	if deps.RateLimiter != nil {
		mutating.Use(deps.RateLimiter.Handler())
	}

	mutating.POST("/process-specs", handlers.ProcessSpecs(deps.Extractor, deps.Metrics))
	mutating.POST("/generate-uml", handlers.GenerateUML(deps.Metrics))
	mutating.POST("/save-uml", handlers.SaveUML(deps.Diagrams, deps.Metrics))
	mutating.DELETE("/uml-history/:id", handlers.DeleteDiagram(deps.Diagrams, deps.Metrics))

	if deps.Snapshotter != nil {
		mutating.POST("/admin/backup", handlers.Backup(deps.Snapshotter, deps.Metrics))
	}
}
