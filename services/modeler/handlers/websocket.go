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
	"github.com/gorilla/websocket"

	"github.com/Ag-Linings/uml-diagram/services/mermaid"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("failed to write websocket JSON", "error", err)
	}
	return err
}

// Preview handles GET /ws/preview: the editor streams model frames and
// gets the rendered syntax back for each one, so the diagram tracks
// edits live without a round of POST requests.
func Preview(metrics *observability.ModelerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			metrics.RecordRequest(observability.EndpointPreview, false)
			return
		}
		defer ws.Close()
		slog.Info("preview client connected")
		metrics.RecordRequest(observability.EndpointPreview, true)

		for {
			var req datatypes.PreviewRequest
			if err := ws.ReadJSON(&req); err != nil {
				slog.Info("preview client disconnected", "error", err.Error())
				return
			}

			if len(req.Entities) == 0 {
				if sendJSON(ws, datatypes.PreviewResponse{Error: "model has no entities"}) != nil {
					return
				}
				continue
			}

			syntax := mermaid.ClassDiagram(req.Entities, req.Relationships)
			if sendJSON(ws, datatypes.PreviewResponse{UMLSyntax: syntax}) != nil {
				return
			}
		}
	}
}
