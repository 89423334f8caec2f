// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ag-Linings/uml-diagram/pkg/ux"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// readDescription takes the description from the args, or from stdin when
// none is given (so specs can be piped in).
func readDescription(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	desc := strings.TrimSpace(string(data))
	if desc == "" {
		return "", fmt.Errorf("no description given (pass it as an argument or pipe it in)")
	}
	return desc, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	description, err := readDescription(args)
	if err != nil {
		return err
	}

	client := NewAPIClient(serverURL)
	resp, err := client.ProcessSpecs(cmd.Context(), description)
	if err != nil {
		return err
	}
	cliLogger.Debug("extraction complete", "entities", len(resp.Entities))

	if jsonOutput {
		return printJSON(resp)
	}

	ux.Title("Extracted Model")
	for _, e := range resp.Entities {
		fmt.Printf("  %s  (%d attributes, %d methods)\n",
			ux.Styles.Highlight.Render(e.Name), len(e.Attributes), len(e.Methods))
	}
	if len(resp.Relationships) > 0 {
		fmt.Println()
		ux.Title("Relationships")
		for _, r := range resp.Relationships {
			line := fmt.Sprintf("  %s -[%s]-> %s", r.Source, r.Type, r.Target)
			if r.Label != "" {
				line += " (" + r.Label + ")"
			}
			fmt.Println(line)
		}
	}
	fmt.Println()
	fmt.Println(ux.Styles.Muted.Render(resp.EnhancedDescription))
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// readModelFile loads a model from the file argument or stdin.
func readModelFile(args []string) (datatypes.Model, error) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return datatypes.Model{}, fmt.Errorf("read model: %w", err)
	}

	var model datatypes.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return datatypes.Model{}, fmt.Errorf("parse model JSON: %w", err)
	}
	if len(model.Entities) == 0 {
		return datatypes.Model{}, fmt.Errorf("model has no entities")
	}
	return model, nil
}
