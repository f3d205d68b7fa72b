// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_markup

// Caller-facing utterances. The fallback texts are fixed: whatever went
// wrong upstream, the caller always hears one of these instead of dead air.
const (
	GreetingText    = "Welcome to AI Health Assistant. Please describe your health concern."
	UnavailableText = "I apologize, but our AI system is currently unavailable. Please try again later."
	ErrorText       = "I apologize, but I encountered an error. Please try again later."
	RetryText       = "I'm sorry, I couldn't understand that. Please try again."
)

const (
	DefaultVoice         = "alice"
	DefaultRecordSeconds = 30
	DefaultRecordAction  = "/process-recording"
)

// Builder produces Documents for each call event. All methods are pure; the
// only state is configuration.
type Builder struct {
	voice         string
	recordSeconds int
	recordAction  string
}

type BuilderOption func(*Builder)

// WithVoice overrides the voice profile used for Say directives.
func WithVoice(voice string) BuilderOption {
	return func(b *Builder) { b.voice = voice }
}

// WithRecordAction overrides the callback path that receives transcriptions.
func WithRecordAction(action string) BuilderOption {
	return func(b *Builder) { b.recordAction = action }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		voice:         DefaultVoice,
		recordSeconds: DefaultRecordSeconds,
		recordAction:  DefaultRecordAction,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) say(text, language string) Directive {
	return Directive{Say: &Say{Text: text, Voice: b.voice, Language: language}}
}

// SpokenAdvice speaks the generated advice and nothing else.
func (b *Builder) SpokenAdvice(advice, language string) *Document {
	return &Document{Directives: []Directive{b.say(advice, language)}}
}

// Greeting welcomes the caller and starts a transcribed recording of the
// health concern.
func (b *Builder) Greeting(language string) *Document {
	return &Document{Directives: []Directive{
		b.say(GreetingText, language),
		{Record: &Record{
			MaxLengthSeconds: b.recordSeconds,
			Action:           b.recordAction,
			Transcribe:       true,
		}},
	}}
}

// SystemUnavailable is spoken when the inference integration never came up.
// It is identical for every session and event.
func (b *Builder) SystemUnavailable() *Document {
	return &Document{Directives: []Directive{b.say(UnavailableText, "")}}
}

// InternalError is spoken when an adapter call failed mid-call.
func (b *Builder) InternalError() *Document {
	return &Document{Directives: []Directive{b.say(ErrorText, "")}}
}

// RetryPrompt is spoken when a transcription came back empty.
func (b *Builder) RetryPrompt() *Document {
	return &Document{Directives: []Directive{b.say(RetryText, "")}}
}
