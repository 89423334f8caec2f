// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Ag-Linings/uml-diagram/pkg/ux"
	"github.com/Ag-Linings/uml-diagram/pkg/validation"
	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

// Editor actions offered in the main loop.
const (
	actionRenameEntity = "Rename entity"
	actionRemoveEntity = "Remove entity"
	actionAddRel       = "Add relationship"
	actionRemoveRel    = "Remove relationship"
	actionPreview      = "Preview diagram"
	actionSave         = "Save and exit"
	actionDiscard      = "Discard changes"
)

func runEdit(cmd *cobra.Command, args []string) error {
	if !ux.IsInteractive() {
		return fmt.Errorf("edit needs an interactive terminal")
	}

	client := NewAPIClient(serverURL)
	d, err := client.GetDiagram(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	model := datatypes.Model{
		Entities:      d.Entities,
		Relationships: d.Relationships,
	}
	if err := model.Validate(); err != nil {
		ux.Warn("stored model failed validation, editing anyway: %v", err)
	}

	ux.Title("Editing: " + d.Title)
	for {
		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model editor").
				Description(fmt.Sprintf("%d entities, %d relationships",
					len(model.Entities), len(model.Relationships))).
				Options(huh.NewOptions(
					actionRenameEntity, actionRemoveEntity,
					actionAddRel, actionRemoveRel,
					actionPreview, actionSave, actionDiscard,
				)...).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			return err
		}

		switch action {
		case actionRenameEntity:
			err = editRename(&model)
		case actionRemoveEntity:
			err = editRemoveEntity(&model)
		case actionAddRel:
			err = editAddRelationship(&model)
		case actionRemoveRel:
			err = editRemoveRelationship(&model)
		case actionPreview:
			err = editPreview(cmd, client, model)
		case actionSave:
			return editSave(cmd, client, d, model)
		case actionDiscard:
			fmt.Println("changes discarded")
			return nil
		}
		if err != nil {
			ux.Error("%v", err)
		}
	}
}

func entityNames(m *datatypes.Model) []string {
	names := make([]string, len(m.Entities))
	for i, e := range m.Entities {
		names[i] = e.Name
	}
	return names
}

func editRename(m *datatypes.Model) error {
	if len(m.Entities) == 0 {
		return fmt.Errorf("model has no entities")
	}

	var oldName, newName string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Entity to rename").
			Options(huh.NewOptions(entityNames(m)...)...).
			Value(&oldName),
		huh.NewInput().
			Title("New name").
			Validate(validation.ValidateIdentifier).
			Value(&newName),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := m.RenameEntity(oldName, newName); err != nil {
		return err
	}
	ux.Success("renamed %s to %s (relationships updated)", oldName, newName)
	return nil
}

func editRemoveEntity(m *datatypes.Model) error {
	if len(m.Entities) == 0 {
		return fmt.Errorf("model has no entities")
	}

	var name string
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Entity to remove").
			Options(huh.NewOptions(entityNames(m)...)...).
			Value(&name),
		huh.NewConfirm().
			Title("Relationships touching it will be dropped. Continue?").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	dropped, err := m.RemoveEntity(name)
	if err != nil {
		return err
	}
	ux.Success("removed %s (%d relationships dropped)", name, dropped)
	return nil
}

func editAddRelationship(m *datatypes.Model) error {
	if len(m.Entities) < 2 {
		return fmt.Errorf("need at least two entities")
	}

	var source, target, kind, label string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Source").
			Options(huh.NewOptions(entityNames(m)...)...).
			Value(&source),
		huh.NewSelect[string]().
			Title("Target").
			Options(huh.NewOptions(entityNames(m)...)...).
			Value(&target),
		huh.NewSelect[string]().
			Title("Kind").
			Options(huh.NewOptions(datatypes.RelationshipKinds...)...).
			Value(&kind),
		huh.NewInput().
			Title("Label (optional)").
			Value(&label),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := m.AddRelationship(datatypes.Relationship{
		Source: source, Target: target, Type: kind, Label: label,
	}); err != nil {
		return err
	}
	ux.Success("added %s -[%s]-> %s", source, kind, target)
	return nil
}

func editRemoveRelationship(m *datatypes.Model) error {
	if len(m.Relationships) == 0 {
		return fmt.Errorf("model has no relationships")
	}

	labels := make([]string, len(m.Relationships))
	for i, r := range m.Relationships {
		labels[i] = fmt.Sprintf("%d: %s -[%s]-> %s", i, r.Source, r.Type, r.Target)
	}

	var picked string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Relationship to remove").
			Options(huh.NewOptions(labels...)...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return err
	}

	var index int
	if _, err := fmt.Sscanf(picked, "%d:", &index); err != nil {
		return fmt.Errorf("parse selection: %w", err)
	}
	if err := m.RemoveRelationship(index); err != nil {
		return err
	}
	ux.Success("removed relationship %d", index)
	return nil
}

func editPreview(cmd *cobra.Command, client *APIClient, m datatypes.Model) error {
	syntax, err := client.GenerateUML(cmd.Context(), m)
	if err != nil {
		return err
	}
	ux.CodeBlock(syntax)
	return nil
}

// editSave renders the edited model and stores it as a new history entry,
// leaving the original untouched.
func editSave(cmd *cobra.Command, client *APIClient, d *datatypes.UMLDiagram, m datatypes.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("model is not consistent: %w", err)
	}

	title := d.Title + " (edited)"
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title for the edited diagram").Value(&title),
	))
	if err := form.Run(); err != nil {
		return err
	}

	syntax, err := client.GenerateUML(cmd.Context(), m)
	if err != nil {
		return err
	}

	id, err := client.SaveUML(cmd.Context(), datatypes.SaveUMLRequest{
		Title:         title,
		Description:   d.Description,
		UMLSyntax:     syntax,
		Entities:      m.Entities,
		Relationships: m.Relationships,
	})
	if err != nil {
		return err
	}
	ux.Success("saved edited diagram %s", id)
	return nil
}
