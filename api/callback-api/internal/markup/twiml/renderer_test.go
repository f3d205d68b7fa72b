package internal_twiml_markup

import (
	"testing"

	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	"github.com/stretchr/testify/assert"
)

func TestRenderGreeting(t *testing.T) {
	r := NewRenderer()
	doc := internal_markup.NewBuilder().Greeting("en")

	out, err := r.Render(doc)
	assert.NoError(t, err)
	assert.Contains(t, out, "<Response>")
	assert.Contains(t, out, internal_markup.GreetingText)
	assert.Contains(t, out, `voice="alice"`)
	assert.Contains(t, out, "<Record")
	assert.Contains(t, out, `maxLength="30"`)
	assert.Contains(t, out, `transcribe="true"`)
	assert.Contains(t, out, `action="/process-recording"`)
}

func TestRenderAdvice_NoRecordVerb(t *testing.T) {
	r := NewRenderer()
	doc := internal_markup.NewBuilder().SpokenAdvice("stay hydrated", "en")

	out, err := r.Render(doc)
	assert.NoError(t, err)
	assert.Contains(t, out, "stay hydrated")
	assert.NotContains(t, out, "<Record")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/xml", NewRenderer().ContentType())
}
