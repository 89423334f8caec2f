// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Ag-Linings/uml-diagram/pkg/ux"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

func runHistoryList(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(serverURL)
	diagrams, err := client.History(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(diagrams)
	}
	if len(diagrams) == 0 {
		fmt.Println("history is empty")
		return nil
	}

	if !ux.IsInteractive() {
		for _, d := range diagrams {
			fmt.Printf("%s\t%s\t%s\n", d.ID, d.CreatedAt, d.Title)
		}
		return nil
	}
	return browseHistory(diagrams)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(serverURL)
	d, err := client.GetDiagram(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(d)
	}

	ux.Title(d.Title)
	fmt.Println(ux.Styles.Muted.Render(fmt.Sprintf("id: %s  created: %s", d.ID, d.CreatedAt)))
	fmt.Println()
	ux.CodeBlock(d.UMLSyntax)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	client := NewAPIClient(serverURL)
	if err := client.DeleteDiagram(cmd.Context(), args[0]); err != nil {
		return err
	}
	ux.Success("deleted diagram %s", args[0])
	return nil
}

// =============================================================================
// History Browser TUI
// =============================================================================

// historyModel is the bubbletea model for the interactive history table.
// Enter prints the selected diagram's syntax after the program exits.
type historyModel struct {
	table    table.Model
	diagrams []datatypes.UMLDiagram
	selected *datatypes.UMLDiagram
}

func (m historyModel) Init() tea.Cmd { return nil }

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.diagrams) {
				m.selected = &m.diagrams[i]
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m historyModel) View() string {
	help := ux.Styles.Muted.Render("↑/↓ move · enter show · q quit")
	return ux.Styles.Box.Render(m.table.View()) + "\n" + help + "\n"
}

func browseHistory(diagrams []datatypes.UMLDiagram) error {
	rows := make([]table.Row, len(diagrams))
	for i, d := range diagrams {
		rows[i] = table.Row{d.ID, d.Title, d.CreatedAt, fmt.Sprintf("%d", len(d.Entities))}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 36},
			{Title: "Title", Width: 24},
			{Title: "Created", Width: 27},
			{Title: "Entities", Width: 8},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ux.ColorBlueBright)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ux.ColorBlueDeep)
	t.SetStyles(styles)

	final, err := tea.NewProgram(historyModel{table: t, diagrams: diagrams}).Run()
	if err != nil {
		return fmt.Errorf("history browser: %w", err)
	}

	if m, ok := final.(historyModel); ok && m.selected != nil {
		ux.Title(m.selected.Title)
		ux.CodeBlock(m.selected.UMLSyntax)
	}
	return nil
}
