package internal_markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpokenAdvice_SingleSayNoRecord(t *testing.T) {
	b := NewBuilder()
	doc := b.SpokenAdvice("drink fluids and rest", "en")

	assert.Len(t, doc.Directives, 1)
	assert.Equal(t, []string{"drink fluids and rest"}, doc.Says())
	assert.False(t, doc.HasRecord())
	assert.Equal(t, DefaultVoice, doc.Directives[0].Say.Voice)
}

func TestGreeting_SayThenTranscribedRecord(t *testing.T) {
	b := NewBuilder()
	doc := b.Greeting("en")

	assert.Len(t, doc.Directives, 2)
	assert.Equal(t, GreetingText, doc.Directives[0].Say.Text)

	rec := doc.Directives[1].Record
	assert.NotNil(t, rec)
	assert.True(t, rec.Transcribe)
	assert.Equal(t, DefaultRecordSeconds, rec.MaxLengthSeconds)
	assert.Equal(t, DefaultRecordAction, rec.Action)
}

func TestFallbacks_AlwaysSpeak(t *testing.T) {
	b := NewBuilder()
	for name, doc := range map[string]*Document{
		"unavailable": b.SystemUnavailable(),
		"error":       b.InternalError(),
		"retry":       b.RetryPrompt(),
	} {
		assert.NotEmpty(t, doc.Directives, name)
		assert.Len(t, doc.Says(), 1, name)
		assert.False(t, doc.HasRecord(), name)
	}
}

func TestSystemUnavailable_Deterministic(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, b.SystemUnavailable(), b.SystemUnavailable())
	assert.Equal(t, UnavailableText, b.SystemUnavailable().Says()[0])
}

func TestBuilderOptions(t *testing.T) {
	b := NewBuilder(WithVoice("Polly.Joanna"), WithRecordAction("/v1/recording"))
	doc := b.Greeting("en")

	assert.Equal(t, "Polly.Joanna", doc.Directives[0].Say.Voice)
	assert.Equal(t, "/v1/recording", doc.Directives[1].Record.Action)
}
