// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_telephony

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a telephony integration that failed to initialize.
// The request-callback endpoint surfaces it as a structured 500; no session
// is created.
var ErrUnavailable = errors.New("telephony integration is not available")

// PlacementError is a failed outbound call placement.
type PlacementError struct {
	To  string
	Err error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("failed to place call to %s: %v", e.To, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

// Dialer places outbound calls. answerURL is the webhook the provider calls
// once the callee picks up; it must speak this service's markup dialect
// (TwiML for Twilio, NCCO for Vonage).
type Dialer interface {
	PlaceCall(ctx context.Context, to, answerURL string) (string, error)
	Provider() string
}
