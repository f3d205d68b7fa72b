// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_inference

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks an inference integration that failed to initialize
// (missing credentials, unknown provider). Constructors wrap it so callers
// can degrade to the spoken unavailable fallback instead of failing the call.
var ErrUnavailable = errors.New("inference integration is not available")

// GenerationError is a per-invocation failure: timeout, empty question,
// empty completion, provider error. The orchestrator converts it into the
// spoken error fallback; it never reaches the carrier.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advice generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("advice generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MaxAdviceTokens bounds the generated advice. It is a semantic cap carried
// over from the original model configuration, not a hard character count.
const MaxAdviceTokens = 200

// BuildPrompt frames a caller question as a medical-advice prompt.
func BuildPrompt(question string) string {
	return fmt.Sprintf("Question: %s\nPlease provide medical advice.", question)
}

// Generator produces a single advice text for a health question. Every
// failure is returned as ErrUnavailable or *GenerationError; implementations
// never panic past this boundary.
type Generator interface {
	GenerateAdvice(ctx context.Context, question string) (string, error)
	Provider() string
}
