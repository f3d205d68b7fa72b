package internal_ncco_markup

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
	assert.Contains(t, out, `"talk"`)
	assert.Contains(t, out, internal_markup.GreetingText)
	assert.Contains(t, out, `"record"`)
	assert.Contains(t, out, "/process-recording")
}

func TestRenderAdvice_TalkOnly(t *testing.T) {
	r := NewRenderer()
	doc := internal_markup.NewBuilder().SpokenAdvice("rest and hydrate", "en")

	out, err := r.Render(doc)
	assert.NoError(t, err)
	assert.Contains(t, out, "rest and hydrate")
	assert.NotContains(t, out, `"record"`)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", NewRenderer().ContentType())
}
