// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// ErrNotFound is returned by Get and Delete for unknown diagram ids.
var ErrNotFound = errors.New("diagram not found")

// diagramPrefix namespaces diagram keys so future record kinds can share
// the database.
const diagramPrefix = "diagram/"

// DiagramStore is the diagram history: saved diagrams keyed by UUID,
// listed newest-first.
//
// Safe for concurrent use; Badger provides the transaction isolation.
type DiagramStore struct {
	db     *badger.DB
	logger *slog.Logger

	gcStop chan struct{}
	gcDone chan struct{}
}

// Open opens (or creates) a diagram store with the given configuration.
// Call Close when done.
func Open(cfg Config) (*DiagramStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &DiagramStore{db: db, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.gcStop = make(chan struct{})
		s.gcDone = make(chan struct{})
		go s.gcLoop(cfg.GCInterval, cfg.GCDiscardRatio)
	}
	return s, nil
}

// OpenInMemory opens a throwaway store for tests.
func OpenInMemory() (*DiagramStore, error) {
	return Open(Config{InMemory: true})
}

// Close stops background GC and closes the database.
func (s *DiagramStore) Close() error {
	if s.gcStop != nil {
		close(s.gcStop)
		<-s.gcDone
	}
	return s.db.Close()
}

func (s *DiagramStore) gcLoop(interval time.Duration, ratio float64) {
	defer close(s.gcDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.gcStop:
			return
		case <-ticker.C:
			runGC(s.db, ratio, s.logger)
		}
	}
}

// Save persists a new diagram and returns it with its assigned id and
// creation timestamp.
//
// An empty title becomes "UML Diagram N" where N is the new history
// length, matching what the save endpoint has always returned.
func (s *DiagramStore) Save(ctx context.Context, req datatypes.SaveUMLRequest) (*datatypes.UMLDiagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		n, err := s.Count(ctx)
		if err != nil {
			return nil, err
		}
		title = fmt.Sprintf("UML Diagram %d", n+1)
	}

	diagram := &datatypes.UMLDiagram{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   req.Description,
		UMLSyntax:     req.UMLSyntax,
		Entities:      req.Entities,
		Relationships: req.Relationships,
		// RFC3339Nano keeps sub-second ordering for diagrams saved in
		// quick succession, like the original isoformat timestamps did.
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	value, err := json.Marshal(diagram)
	if err != nil {
		return nil, fmt.Errorf("encode diagram: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(diagram.ID), value)
	})
	if err != nil {
		return nil, fmt.Errorf("save diagram: %w", err)
	}

	s.logger.Info("diagram saved", "id", diagram.ID, "title", diagram.Title)
	return diagram, nil
}

// Get returns the diagram with the given id, or ErrNotFound.
func (s *DiagramStore) Get(ctx context.Context, id string) (*datatypes.UMLDiagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var diagram datatypes.UMLDiagram
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &diagram)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get diagram %s: %w", id, err)
	}
	return &diagram, nil
}

// Delete removes the diagram with the given id, or returns ErrNotFound.
func (s *DiagramStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete diagram %s: %w", id, err)
	}
	s.logger.Info("diagram deleted", "id", id)
	return nil
}

// List returns every saved diagram, newest first by createdAt with the id
// as tiebreaker. A record that fails to decode is skipped with a warning
// rather than failing the whole listing.
func (s *DiagramStore) List(ctx context.Context) ([]datatypes.UMLDiagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diagrams := []datatypes.UMLDiagram{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(diagramPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var d datatypes.UMLDiagram
				if err := json.Unmarshal(val, &d); err != nil {
					s.logger.Warn("skipping undecodable diagram record",
						"key", string(item.Key()), "error", err)
					return nil
				}
				diagrams = append(diagrams, d)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}

	sort.Slice(diagrams, func(i, j int) bool {
		if diagrams[i].CreatedAt != diagrams[j].CreatedAt {
			return diagrams[i].CreatedAt > diagrams[j].CreatedAt
		}
		return diagrams[i].ID > diagrams[j].ID
	})
	return diagrams, nil
}

// Count returns the number of saved diagrams.
func (s *DiagramStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(diagramPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count diagrams: %w", err)
	}
	return count, nil
}

func key(id string) []byte {
	return []byte(diagramPrefix + id)
}
