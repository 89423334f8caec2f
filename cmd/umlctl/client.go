// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// APIClient talks to a running modeler service.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the service at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the JSON error body every endpoint returns on failure.
type apiError struct {
	Error string `json:"error"`
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, ae.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ProcessSpecs extracts a model from a free-text description.
func (c *APIClient) ProcessSpecs(ctx context.Context, description string) (*datatypes.ProcessSpecsResponse, error) {
	var resp datatypes.ProcessSpecsResponse
	err := c.do(ctx, http.MethodPost, "/process-specs",
		datatypes.ProcessSpecsRequest{Description: description}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateUML renders a model as Mermaid class-diagram syntax.
func (c *APIClient) GenerateUML(ctx context.Context, model datatypes.Model) (string, error) {
	var resp datatypes.GenerateUMLResponse
	err := c.do(ctx, http.MethodPost, "/generate-uml", datatypes.GenerateUMLRequest{
		Entities:      model.Entities,
		Relationships: model.Relationships,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.UMLSyntax, nil
}

// SaveUML persists a diagram and returns its assigned id.
func (c *APIClient) SaveUML(ctx context.Context, req datatypes.SaveUMLRequest) (string, error) {
	var resp datatypes.SaveUMLResponse
	if err := c.do(ctx, http.MethodPost, "/save-uml", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// History lists every saved diagram, newest first.
func (c *APIClient) History(ctx context.Context) ([]datatypes.UMLDiagram, error) {
	var list []datatypes.UMLDiagram
	if err := c.do(ctx, http.MethodGet, "/uml-history", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetDiagram fetches one saved diagram by id.
func (c *APIClient) GetDiagram(ctx context.Context, id string) (*datatypes.UMLDiagram, error) {
	var d datatypes.UMLDiagram
	if err := c.do(ctx, http.MethodGet, "/uml-history/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDiagram removes one saved diagram by id.
func (c *APIClient) DeleteDiagram(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/uml-history/"+id, nil, nil)
}

// Backup triggers a history snapshot on the server.
func (c *APIClient) Backup(ctx context.Context) (*datatypes.BackupResponse, error) {
	var resp datatypes.BackupResponse
	if err := c.do(ctx, http.MethodPost, "/admin/backup", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
