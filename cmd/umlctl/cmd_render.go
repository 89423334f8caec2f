// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/Ag-Linings/uml-diagram/pkg/ux"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

func runRender(cmd *cobra.Command, args []string) error {
	model, err := readModelFile(args)
	if err != nil {
		return err
	}

	client := NewAPIClient(serverURL)
	syntax, err := client.GenerateUML(cmd.Context(), model)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(datatypes.GenerateUMLResponse{UMLSyntax: syntax})
	}
	ux.CodeBlock(syntax)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	model, err := readModelFile(args)
	if err != nil {
		return err
	}

	client := NewAPIClient(serverURL)
	syntax, err := client.GenerateUML(cmd.Context(), model)
	if err != nil {
		return err
	}

	id, err := client.SaveUML(cmd.Context(), datatypes.SaveUMLRequest{
		Title:         saveTitle,
		Description:   saveDescription,
		UMLSyntax:     syntax,
		Entities:      model.Entities,
		Relationships: model.Relationships,
	})
	if err != nil {
		return err
	}
	cliLogger.Info("diagram saved", "id", id)

	if jsonOutput {
		return printJSON(datatypes.SaveUMLResponse{ID: id, Success: true})
	}
	ux.Success("saved diagram %s", id)
	return nil
}
