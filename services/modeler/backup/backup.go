// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package backup snapshots the diagram history to a local directory or a
// GCS bucket.
//
// A snapshot is one JSON document holding the full history array, the
// same shape the first deployment of this service kept on disk as
// uml_diagrams.json. That makes any snapshot restorable by hand: drop
// the array back in via POST /save-uml per element, or seed a fresh
// store from it.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// Backend writes one snapshot object and reports where it landed.
type Backend interface {
	Write(ctx context.Context, name string, data []byte) (location string, err error)
}

// Lister is the slice of the diagram store the snapshotter needs.
type Lister interface {
	List(ctx context.Context) ([]datatypes.UMLDiagram, error)
}

// Snapshotter serializes the history and hands it to a Backend.
type Snapshotter struct {
	store   Lister
	backend Backend
	logger  *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewSnapshotter wires a store to a backend.
func NewSnapshotter(store Lister, backend Backend, logger *slog.Logger) *Snapshotter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshotter{store: store, backend: backend, logger: logger, now: time.Now}
}

// Run takes one snapshot. The object name embeds a UTC timestamp so
// repeated backups never overwrite each other.
func (s *Snapshotter) Run(ctx context.Context) (*datatypes.BackupResponse, error) {
	diagrams, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot history: %w", err)
	}

	data, err := json.MarshalIndent(diagrams, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("uml_diagrams_%s.json", s.now().UTC().Format("20060102T150405Z"))
	location, err := s.backend.Write(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("history snapshot written", "location", location, "diagrams", len(diagrams))
	return &datatypes.BackupResponse{Location: location, Diagrams: len(diagrams)}, nil
}

// =============================================================================
// Local Directory Backend
// =============================================================================

// LocalBackend writes snapshots into a directory on the service host.
type LocalBackend struct {
	Dir string
}

// Write implements Backend.
func (b *LocalBackend) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(b.Dir, 0750); err != nil {
		return "", fmt.Errorf("create backup directory %s: %w", b.Dir, err)
	}
	path := filepath.Join(b.Dir, name)
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("write backup file %s: %w", path, err)
	}
	return path, nil
}

// =============================================================================
// GCS Backend
// =============================================================================

// GCSBackend writes snapshots as objects in a bucket under the uml-backups/
// prefix.
type GCSBackend struct {
	client *storage.Client
	bucket string
}

// NewGCSBackend creates a bucket-backed backend. credentialsFile may be
// empty to use application default credentials.
func NewGCSBackend(ctx context.Context, bucket, credentialsFile string) (*GCSBackend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("credentials file %s: %w", credentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSBackend{client: client, bucket: bucket}, nil
}

// Write implements Backend.
func (b *GCSBackend) Write(ctx context.Context, name string, data []byte) (string, error) {
	object := "uml-backups/" + name
	w := b.client.Bucket(b.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", object, err)
	}
	return fmt.Sprintf("gs://%s/%s", b.bucket, object), nil
}

// Close releases the GCS client.
func (b *GCSBackend) Close() error {
	return b.client.Close()
}
