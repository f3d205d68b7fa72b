// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_anthropic_inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	internal_inference "github.com/curavoice/api/callback-api/internal/inference"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/utils"
)

const defaultModel = anthropic.ModelClaude3_5HaikuLatest

type generator struct {
	logger commons.Logger
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic builds a Generator backed by the Anthropic messages API.
func NewAnthropic(logger commons.Logger, apiKey, model string) (internal_inference.Generator, error) {
	if utils.IsEmpty(apiKey) {
		return nil, fmt.Errorf("anthropic api key is missing: %w", internal_inference.ErrUnavailable)
	}
	m := defaultModel
	if !utils.IsEmpty(model) {
		m = anthropic.Model(model)
	}
	return &generator{
		logger: logger,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}, nil
}

func (g *generator) Provider() string {
	return "anthropic"
}

func (g *generator) GenerateAdvice(ctx context.Context, question string) (string, error) {
	if utils.IsEmpty(question) {
		return "", &internal_inference.GenerationError{Reason: "empty question"}
	}

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: internal_inference.MaxAdviceTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(internal_inference.BuildPrompt(question))),
		},
	})
	if err != nil {
		return "", &internal_inference.GenerationError{Reason: "anthropic message failed", Err: err}
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	advice := sb.String()
	if utils.IsEmpty(advice) {
		return "", &internal_inference.GenerationError{Reason: "anthropic returned an empty completion"}
	}

	g.logger.Debugf("anthropic advice generated: model=%s, chars=%d", g.model, len(advice))
	return advice, nil
}
