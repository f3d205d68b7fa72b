// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_markup

// Document is the provider-neutral description of what the carrier should do
// next on a live call: an ordered list of spoken and recording directives.
// It is rendered to concrete markup (TwiML, NCCO) by a Renderer, never
// returned to the carrier raw.
type Document struct {
	Directives []Directive `json:"directives"`
}

// Directive is a single instruction for the carrier. Exactly one of the
// fields is set.
type Directive struct {
	Say    *Say    `json:"say,omitempty"`
	Record *Record `json:"record,omitempty"`
}

// Say speaks text to the caller with the given voice profile.
type Say struct {
	Text     string `json:"text"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}

// Record records the caller and posts the transcription to Action.
type Record struct {
	MaxLengthSeconds int    `json:"maxLengthSeconds"`
	Action           string `json:"action"`
	Transcribe       bool   `json:"transcribe"`
}

// Says returns the spoken texts in document order.
func (d *Document) Says() []string {
	var texts []string
	for _, dir := range d.Directives {
		if dir.Say != nil {
			texts = append(texts, dir.Say.Text)
		}
	}
	return texts
}

// HasRecord reports whether the document asks the carrier to record.
func (d *Document) HasRecord() bool {
	for _, dir := range d.Directives {
		if dir.Record != nil {
			return true
		}
	}
	return false
}

// Renderer turns a Document into carrier markup.
type Renderer interface {
	ContentType() string
	Render(doc *Document) (string, error)
}
