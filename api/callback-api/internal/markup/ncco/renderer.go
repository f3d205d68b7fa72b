// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_ncco_markup

import (
	"encoding/json"

	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	"github.com/vonage/vonage-go-sdk/ncco"
)

// renderer turns a markup Document into a Vonage NCCO action list.
type renderer struct{}

func NewRenderer() internal_markup.Renderer {
	return renderer{}
}

func (renderer) ContentType() string {
	return "application/json"
}

func (renderer) Render(doc *internal_markup.Document) (string, error) {
	n := ncco.Ncco{}
	for _, dir := range doc.Directives {
		switch {
		case dir.Say != nil:
			// Vonage has no generic voice profiles; the Twilio voice name is
			// not portable so only the text carries over.
			n.AddAction(ncco.TalkAction{Text: dir.Say.Text})
		case dir.Record != nil:
			n.AddAction(ncco.RecordAction{
				EventUrl:  []string{dir.Record.Action},
				TimeOut:   dir.Record.MaxLengthSeconds,
				BeepStart: true,
			})
		}
	}
	out, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
