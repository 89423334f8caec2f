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
)

func runBackup(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(serverURL)
	resp, err := client.Backup(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}
	ux.Success("snapshot of %d diagrams written to %s", resp.Diagrams, resp.Location)
	return nil
}
