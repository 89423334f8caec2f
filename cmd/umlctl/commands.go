// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ag-Linings/uml-diagram/pkg/logging"
)

// --- Global Command Variables ---
var (
	serverURL  string
	jsonOutput bool
	logLevel   string

	saveTitle       string
	saveDescription string

	cliLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "umlctl",
		Short: "A cli for the UML diagram generator service",
		Long: `umlctl drives the UML diagram generator: extract entity models
from plain-text system descriptions, render Mermaid class diagrams,
and manage the saved diagram history.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cliLogger, _ = logging.New(logging.Config{
				Level:   logging.ParseLevel(logLevel),
				Service: "umlctl",
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cliLogger != nil {
				_ = cliLogger.Close()
			}
		},
	}

	extractCmd = &cobra.Command{
		Use:   "extract [description]",
		Short: "Extract an entity model from a plain-text description",
		Long: `Sends a description to the service and prints the extracted
entities and relationships. Reads from stdin when no argument is given.

Examples:
  umlctl extract "The Student enrolls in a Course taught by a Professor"
  cat spec.txt | umlctl extract
  umlctl extract --json "..." > model.json`,
		RunE: runExtract,
	}

	renderCmd = &cobra.Command{
		Use:   "render [model.json]",
		Short: "Render a model file as Mermaid class-diagram syntax",
		Long: `Reads an entity model (the JSON produced by 'umlctl extract --json')
and prints the rendered Mermaid syntax. Reads from stdin when no file
is given.`,
		RunE: runRender,
	}

	saveCmd = &cobra.Command{
		Use:   "save [model.json]",
		Short: "Render a model and save it to the diagram history",
		RunE:  runSave,
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Manage the saved diagram history",
	}
	historyListCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved diagrams, newest first",
		RunE:  runHistoryList,
	}
	historyShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	historyDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	}

	editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Interactively edit a saved diagram's model",
		Long: `Opens an interactive editor for a saved diagram: rename or remove
entities (relationship endpoints follow automatically), add or drop
relationships, then save the result back as a new history entry.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Trigger a history snapshot on the server",
		RunE:  runBackup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("UMLCTL_SERVER", "http://localhost:8000"),
		"Base URL of the modeler service")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON for scripting")

	saveCmd.Flags().StringVar(&saveTitle, "title", "", "Diagram title (server numbers it when empty)")
	saveCmd.Flags().StringVar(&saveDescription, "description", "", "Description stored with the diagram")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(extractCmd, renderCmd, saveCmd, historyCmd, editCmd, backupCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
