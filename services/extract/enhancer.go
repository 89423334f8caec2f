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
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/Ag-Linings/uml-diagram/services/modeler/datatypes"
)

const (
	// enhancerChunkSize bounds how much of a long description is sent
	// per prompt; anything past the first chunk is summarized away.
	enhancerChunkSize    = 4000
	enhancerChunkOverlap = 200

	enhancerSystemPrompt = "You are a software architect. Given a system description and the " +
		"class model extracted from it, write a short, well-structured summary of the system: " +
		"its purpose, its main entities, and how they relate. Plain text, no markdown."
)

// OpenAIEnhancer produces the enhanced description with a chat completion
// instead of the built-in template. Extraction itself stays heuristic;
// only the prose is delegated to the model.
type OpenAIEnhancer struct {
	client *openai.Client
	model  string
}

// NewOpenAIEnhancer creates an enhancer for the given API key and model.
// Model defaults to gpt-4o-mini.
func NewOpenAIEnhancer(apiKey, model string) (*OpenAIEnhancer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is empty")
	}
	if model == "" {
		model = openai.GPT4oMini
		slog.Warn("enhancer model not set, defaulting to gpt-4o-mini")
	}
	return &OpenAIEnhancer{client: openai.NewClient(apiKey), model: model}, nil
}

// Enhance implements Enhancer.
func (e *OpenAIEnhancer) Enhance(ctx context.Context, description string, model *datatypes.Model) (string, error) {
	description, err := truncateDescription(description)
	if err != nil {
		return "", err
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enhancerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(description, model)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// truncateDescription keeps the first chunk of an oversized description,
// splitting on sentence boundaries where possible.
func truncateDescription(description string) (string, error) {
	if len(description) <= enhancerChunkSize {
		return description, nil
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(enhancerChunkSize),
		textsplitter.WithChunkOverlap(enhancerChunkOverlap),
	)
	chunks, err := splitter.SplitText(description)
	if err != nil {
		return "", fmt.Errorf("split description: %w", err)
	}
	if len(chunks) == 0 {
		return description, nil
	}
	return chunks[0], nil
}

func buildPrompt(description string, model *datatypes.Model) string {
	var b strings.Builder
	b.WriteString("System description:\n")
	b.WriteString(description)
	b.WriteString("\n\nExtracted classes:\n")
	for _, e := range model.Entities {
		fmt.Fprintf(&b, "- %s (%d attributes, %d methods)\n", e.Name, len(e.Attributes), len(e.Methods))
	}
	b.WriteString("\nRelationships:\n")
	for _, r := range model.Relationships {
		fmt.Fprintf(&b, "- %s %s %s\n", r.Source, r.Type, r.Target)
	}
	return b.String()
}
