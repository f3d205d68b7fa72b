// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_twiml_markup

import (
	"strconv"

	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	"github.com/twilio/twilio-go/twiml"
)

// renderer turns a markup Document into a TwiML voice response.
type renderer struct{}

func NewRenderer() internal_markup.Renderer {
	return renderer{}
}

func (renderer) ContentType() string {
	return "text/xml"
}

func (renderer) Render(doc *internal_markup.Document) (string, error) {
	verbs := make([]twiml.Element, 0, len(doc.Directives))
	for _, dir := range doc.Directives {
		switch {
		case dir.Say != nil:
			verbs = append(verbs, &twiml.VoiceSay{
				Message:  dir.Say.Text,
				Voice:    dir.Say.Voice,
				Language: dir.Say.Language,
			})
		case dir.Record != nil:
			verbs = append(verbs, &twiml.VoiceRecord{
				Action:     dir.Record.Action,
				MaxLength:  strconv.Itoa(dir.Record.MaxLengthSeconds),
				Transcribe: strconv.FormatBool(dir.Record.Transcribe),
			})
		}
	}
	return twiml.Voice(verbs)
}
