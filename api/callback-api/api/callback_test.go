package callback_api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	internal_twiml_markup "github.com/curavoice/api/callback-api/internal/markup/twiml"
	internal_orchestrator "github.com/curavoice/api/callback-api/internal/orchestrator"
	internal_session "github.com/curavoice/api/callback-api/internal/session"
	"github.com/curavoice/config"
	"github.com/curavoice/pkg/commons"
)

type stubDialer struct {
	callID string
	err    error
}

func (s *stubDialer) PlaceCall(context.Context, string, string) (string, error) {
	return s.callID, s.err
}

func (s *stubDialer) Provider() string { return "stub" }

type stubGenerator struct {
	advice string
}

func (s *stubGenerator) GenerateAdvice(_ context.Context, question string) (string, error) {
	return s.advice, nil
}

func (s *stubGenerator) Provider() string { return "stub" }

func newTestEngine(t *testing.T, opts ...internal_orchestrator.Option) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, _ := commons.NewApplicationLogger(commons.WithLevel("error"))
	cfg := &config.AppConfig{Name: "callback-api", Version: "test"}
	orch := internal_orchestrator.New(logger, internal_session.NewStore(logger), internal_markup.NewBuilder(), opts...)
	api := New(cfg, logger, orch, internal_twiml_markup.NewRenderer())

	engine := gin.New()
	engine.POST("/api/request-callback", api.RequestCallback)
	engine.POST("/handle-call", api.HandleCall)
	engine.POST("/process-recording", api.ProcessRecording)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postForm(engine *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestCallback_MissingPhoneNumber(t *testing.T) {
	engine := newTestEngine(t, internal_orchestrator.WithDialer(&stubDialer{callID: "CA1"}))

	w := postJSON(engine, "/api/request-callback", `{"health_concern": "fever"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Phone number")
}

func TestRequestCallback_DialerUnavailable(t *testing.T) {
	engine := newTestEngine(t)

	w := postJSON(engine, "/api/request-callback", `{"phone_number": "+15551234567"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Telephony client not initialized", resp["error"])
}

func TestRequestCallback_Success(t *testing.T) {
	engine := newTestEngine(t, internal_orchestrator.WithDialer(&stubDialer{callID: "CA123"}))

	w := postJSON(engine, "/api/request-callback", `{"phone_number": "+15551234567", "health_concern": "fever for 3 days"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Callback requested successfully", resp["message"])
	assert.Equal(t, "CA123", resp["call_sid"])
}

func TestHandleCall_RespondsWithTwiml(t *testing.T) {
	engine := newTestEngine(t,
		internal_orchestrator.WithDialer(&stubDialer{callID: "CA1"}),
		internal_orchestrator.WithGenerator(&stubGenerator{advice: "rest and hydrate"}),
	)

	w := postForm(engine, "/handle-call", url.Values{"To": {"+15551234567"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	// unknown number: cold call greeting with a transcribed recording
	assert.Contains(t, w.Body.String(), internal_markup.GreetingText)
	assert.Contains(t, w.Body.String(), "<Record")
}

func TestHandleCall_UnavailableStillAnswers200(t *testing.T) {
	engine := newTestEngine(t)

	w := postForm(engine, "/handle-call", url.Values{"To": {"+15551234567"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), internal_markup.UnavailableText)
}

func TestProcessRecording_AdviceFromTranscription(t *testing.T) {
	engine := newTestEngine(t,
		internal_orchestrator.WithGenerator(&stubGenerator{advice: "take a painkiller and rest"}),
	)

	w := postForm(engine, "/process-recording", url.Values{
		"To":                {"+15551234567"},
		"TranscriptionText": {"I have a headache"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "take a painkiller and rest")
	assert.NotContains(t, w.Body.String(), "<Record")
}

func TestProcessRecording_EmptyTranscription(t *testing.T) {
	engine := newTestEngine(t,
		internal_orchestrator.WithGenerator(&stubGenerator{advice: "unused"}),
	)

	w := postForm(engine, "/process-recording", url.Values{"To": {"+15551234567"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), internal_markup.RetryText)
	assert.NotContains(t, w.Body.String(), "<Record")
}
