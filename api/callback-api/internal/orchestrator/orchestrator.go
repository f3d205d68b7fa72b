// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	internal_calllog "github.com/curavoice/api/callback-api/internal/calllog"
	internal_inference "github.com/curavoice/api/callback-api/internal/inference"
	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	internal_session "github.com/curavoice/api/callback-api/internal/session"
	internal_telephony "github.com/curavoice/api/callback-api/internal/telephony"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/utils"
)

// ErrMissingPhoneNumber is returned when a callback request has no
// destination number.
var ErrMissingPhoneNumber = errors.New("phone number is required")

// CallbackRequest is a request to place an outbound advice call.
type CallbackRequest struct {
	PhoneNumber   string
	Language      string
	HealthConcern string
}

// Orchestrator drives a call through its webhook lifecycle. It is the only
// writer of the session store. The two in-call entry points (HandleCall,
// ProcessRecording) never return an error: the carrier cannot interpret one
// mid-call, so every failure becomes a spoken fallback document.
type Orchestrator struct {
	logger   commons.Logger
	sessions internal_session.Store
	builder  *internal_markup.Builder

	// dialer and generator may be nil when the integration failed to
	// initialize; the flows degrade per the failure-isolation contract.
	dialer    internal_telephony.Dialer
	generator internal_inference.Generator

	callLog          internal_calllog.Store
	answerURL        string
	inferenceTimeout time.Duration
}

type Option func(*Orchestrator)

// WithDialer wires the telephony integration. A nil dialer makes every
// request-callback fail with telephony.ErrUnavailable.
func WithDialer(d internal_telephony.Dialer) Option {
	return func(o *Orchestrator) { o.dialer = d }
}

// WithGenerator wires the inference integration. A nil generator makes every
// in-call turn speak the unavailable fallback.
func WithGenerator(g internal_inference.Generator) Option {
	return func(o *Orchestrator) { o.generator = g }
}

// WithCallLog records terminal sessions to the call log.
func WithCallLog(s internal_calllog.Store) Option {
	return func(o *Orchestrator) { o.callLog = s }
}

// WithAnswerURL sets the webhook URL handed to the telephony provider when
// placing a call.
func WithAnswerURL(url string) Option {
	return func(o *Orchestrator) { o.answerURL = url }
}

// WithInferenceTimeout bounds each advice generation. Zero keeps the
// historical unbounded behavior.
func WithInferenceTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.inferenceTimeout = d }
}

func New(logger commons.Logger, sessions internal_session.Store, builder *internal_markup.Builder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:   logger,
		sessions: sessions,
		builder:  builder,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ErrorDocument is the spoken fallback for callers that need a valid
// document after the orchestrator itself could not be reached (for example
// a renderer failure in the HTTP layer).
func (o *Orchestrator) ErrorDocument() *internal_markup.Document {
	return o.builder.InternalError()
}

// RequestCallback validates the request, stores a fresh session and places
// the outbound call. On placement failure the session is removed so the
// caller sees a structured error and no half-created state. A prior session
// for the same number is overwritten (last-writer-wins).
func (o *Orchestrator) RequestCallback(ctx context.Context, req CallbackRequest) (string, error) {
	if o.dialer == nil {
		return "", internal_telephony.ErrUnavailable
	}
	if utils.IsEmpty(req.PhoneNumber) {
		return "", ErrMissingPhoneNumber
	}

	o.sessions.Put(&internal_session.CallSession{
		PhoneNumber:   req.PhoneNumber,
		Language:      utils.DefaultIfEmpty(req.Language, "en"),
		HealthConcern: req.HealthConcern,
		Status:        internal_session.StatusRequested,
	})

	callID, err := o.dialer.PlaceCall(ctx, req.PhoneNumber, o.answerURL)
	if err != nil {
		o.logger.Errorf("call placement failed: to=%s, err=%v", req.PhoneNumber, err)
		o.sessions.Delete(req.PhoneNumber)
		return "", err
	}

	o.sessions.Update(req.PhoneNumber, func(s *internal_session.CallSession) {
		s.CallID = callID
	})

	o.logger.Infof("initiated callback: to=%s, callId=%s", req.PhoneNumber, callID)
	return callID, nil
}

// HandleCall is the call-connected webhook turn. An unknown number is
// treated as a cold call with empty context: the caller is greeted and asked
// to record a concern.
func (o *Orchestrator) HandleCall(ctx context.Context, to string) *internal_markup.Document {
	sess, known := o.sessions.Get(to)
	if known {
		o.sessions.Update(to, func(s *internal_session.CallSession) {
			s.Status = internal_session.StatusConnected
		})
	} else {
		o.logger.Infof("call-connected for unknown number, treating as cold call: to=%s", to)
	}

	if o.generator == nil {
		return o.builder.SystemUnavailable()
	}

	if sess.HasConcern() {
		advice, err := o.generateAdvice(ctx, sess.HealthConcern)
		if err != nil {
			o.logger.Errorf("advice generation failed on call-connected: to=%s, err=%v", to, err)
			o.finish(ctx, to, internal_session.StatusFailed)
			return o.builder.InternalError()
		}
		o.finish(ctx, to, internal_session.StatusAdviceDelivered)
		return o.builder.SpokenAdvice(advice, sess.Language)
	}

	if known {
		o.sessions.Update(to, func(s *internal_session.CallSession) {
			s.Status = internal_session.StatusAwaitingRecording
		})
	}
	return o.builder.Greeting(utils.DefaultIfEmpty(sess.Language, "en"))
}

// ProcessRecording is the recording-ready webhook turn. An empty
// transcription yields a spoken retry prompt; no retry attempt is tracked.
func (o *Orchestrator) ProcessRecording(ctx context.Context, to, transcription string) *internal_markup.Document {
	if o.generator == nil {
		return o.builder.SystemUnavailable()
	}
	if utils.IsEmpty(transcription) {
		o.logger.Warnf("empty transcription received: to=%s", to)
		return o.builder.RetryPrompt()
	}

	sess, known := o.sessions.Get(to)
	if known {
		o.sessions.Update(to, func(s *internal_session.CallSession) {
			s.Status = internal_session.StatusRecordingReceived
			s.SetConcern(transcription)
		})
	}

	advice, err := o.generateAdvice(ctx, transcription)
	if err != nil {
		o.logger.Errorf("advice generation failed on recording-ready: to=%s, err=%v", to, err)
		o.finish(ctx, to, internal_session.StatusFailed)
		return o.builder.InternalError()
	}

	o.finish(ctx, to, internal_session.StatusAdviceDelivered)
	return o.builder.SpokenAdvice(advice, utils.DefaultIfEmpty(sess.Language, "en"))
}

// generateAdvice shields the call flow from the inference adapter: a panic
// or error inside the adapter becomes an error here, never a broken webhook
// response.
func (o *Orchestrator) generateAdvice(ctx context.Context, question string) (advice string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("advice generation panicked: %v", r)
		}
	}()

	if o.inferenceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.inferenceTimeout)
		defer cancel()
	}
	return o.generator.GenerateAdvice(ctx, question)
}

// finish moves the session to a terminal status and records the outcome.
// The session stays in the store marked terminal; carrier callbacks arrive
// asynchronously and may still reference the number.
func (o *Orchestrator) finish(ctx context.Context, to, status string) {
	o.sessions.Update(to, func(s *internal_session.CallSession) {
		s.Status = status
	})

	if o.callLog == nil {
		return
	}
	sess, ok := o.sessions.Get(to)
	if !ok {
		return
	}
	provider := ""
	if o.dialer != nil {
		provider = o.dialer.Provider()
	}
	if _, err := o.callLog.Save(ctx, &internal_calllog.CallRecord{
		PhoneNumber:   sess.PhoneNumber,
		Language:      sess.Language,
		HealthConcern: sess.HealthConcern,
		Status:        sess.Status,
		CallSid:       sess.CallID,
		Provider:      provider,
	}); err != nil {
		// The call log must never break a live call.
		o.logger.Errorf("failed to record call outcome: to=%s, err=%v", to, err)
	}
}
