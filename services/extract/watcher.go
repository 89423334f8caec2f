// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches rapid editor save events into one reload.
const watchDebounce = 250 * time.Millisecond

// Watcher hot-reloads a lexicon file into an Extractor.
//
// The watch is on the parent directory rather than the file itself so
// atomic rename-into-place saves (the common editor and configmap update
// pattern) are observed.
type Watcher struct {
	path      string
	extractor *Extractor
	logger    *slog.Logger
}

// NewWatcher creates a watcher for the lexicon file at path.
func NewWatcher(path string, x *Extractor, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, extractor: x, logger: logger}
}

// Run watches the lexicon file until the context is cancelled.
//
// A failed reload keeps the previous lexicon; the error is logged, never
// propagated, because a half-written file during an editor save is normal.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create lexicon watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch lexicon directory %s: %w", dir, err)
	}
	w.logger.Info("watching lexicon file", "path", w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("lexicon watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	lex, err := LoadLexicon(w.path)
	if err != nil {
		w.logger.Warn("lexicon reload failed, keeping previous tables", "path", w.path, "error", err)
		return
	}
	w.extractor.SetLexicon(lex)
	w.logger.Info("lexicon reloaded", "path", w.path, "domains", len(lex.Domains))
}
