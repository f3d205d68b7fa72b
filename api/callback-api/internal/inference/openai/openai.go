// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_openai_inference

import (
	"context"
	"fmt"

	internal_inference "github.com/curavoice/api/callback-api/internal/inference"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/utils"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultModel = openai.ChatModelGPT4oMini

type generator struct {
	logger commons.Logger
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAI builds a Generator backed by the OpenAI chat completions API.
func NewOpenAI(logger commons.Logger, apiKey, model string) (internal_inference.Generator, error) {
	if utils.IsEmpty(apiKey) {
		return nil, fmt.Errorf("openai api key is missing: %w", internal_inference.ErrUnavailable)
	}
	m := defaultModel
	if !utils.IsEmpty(model) {
		m = openai.ChatModel(model)
	}
	return &generator{
		logger: logger,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}, nil
}

func (g *generator) Provider() string {
	return "openai"
}

func (g *generator) GenerateAdvice(ctx context.Context, question string) (string, error) {
	if utils.IsEmpty(question) {
		return "", &internal_inference.GenerationError{Reason: "empty question"}
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(internal_inference.BuildPrompt(question)),
		},
		MaxCompletionTokens: openai.Int(internal_inference.MaxAdviceTokens),
	})
	if err != nil {
		return "", &internal_inference.GenerationError{Reason: "openai completion failed", Err: err}
	}
	if len(completion.Choices) == 0 || utils.IsEmpty(completion.Choices[0].Message.Content) {
		return "", &internal_inference.GenerationError{Reason: "openai returned an empty completion"}
	}

	g.logger.Debugf("openai advice generated: model=%s, chars=%d", g.model, len(completion.Choices[0].Message.Content))
	return completion.Choices[0].Message.Content, nil
}
