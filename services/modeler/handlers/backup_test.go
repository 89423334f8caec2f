// Copyright (C) 2025 Ag Linings
// Tests for the admin backup endpoint.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ag-Linings/uml-diagram/services/modeler/backup"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

func TestBackup_WritesSnapshot(t *testing.T) {
	router, s := historyRouter(t)
	snapshotter := backup.NewSnapshotter(s, &backup.LocalBackend{Dir: t.TempDir()}, nil)
	router.POST("/admin/backup", Backup(snapshotter, nil))

	require.Equal(t, http.StatusOK, postJSON(router, "/save-uml", saveUMLRequest("keep")).Code)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/backup", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.BackupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Diagrams)
	assert.FileExists(t, resp.Location)
}

func TestBackup_StoreClosed(t *testing.T) {
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	snapshotter := backup.NewSnapshotter(s, &backup.LocalBackend{Dir: t.TempDir()}, nil)

	router := gin.New()
	router.POST("/admin/backup", Backup(snapshotter, nil))

	require.NoError(t, s.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/backup", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
