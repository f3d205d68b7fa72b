// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_session

import "time"

// Call session status constants.
const (
	StatusRequested         = "requested"          // Outbound call placement requested
	StatusConnected         = "connected"          // Carrier reported the call answered
	StatusAwaitingRecording = "awaiting_recording" // Caller asked to record their concern
	StatusRecordingReceived = "recording_received" // Transcription arrived from the carrier
	StatusAdviceDelivered   = "advice_delivered"   // Advice spoken, call turn done
	StatusFailed            = "failed"             // Adapter failure ended the flow
)

// CallSession tracks one outbound call through its webhook lifecycle, keyed
// by destination phone number. Sessions are transitioned to a terminal
// status rather than deleted mid-call, because carrier callbacks are
// asynchronous and can still reference the number after the advice was
// spoken. A later request-callback for the same number overwrites the row.
type CallSession struct {
	PhoneNumber   string    `json:"phoneNumber"`
	Language      string    `json:"language"`
	HealthConcern string    `json:"healthConcern"`
	Status        string    `json:"status"`
	CallID        string    `json:"callId"`
	CreatedDate   time.Time `json:"createdDate"`
	UpdatedDate   time.Time `json:"updatedDate"`
}

// HasConcern reports whether a health concern is already known.
func (s *CallSession) HasConcern() bool {
	return s.HealthConcern != ""
}

// SetConcern populates the health concern if it is still empty. The concern
// is immutable once set: the first transcription wins.
func (s *CallSession) SetConcern(concern string) {
	if s.HealthConcern == "" {
		s.HealthConcern = concern
	}
}

// IsTerminal reports whether the session reached a final status.
func (s *CallSession) IsTerminal() bool {
	return s.Status == StatusAdviceDelivered || s.Status == StatusFailed
}
