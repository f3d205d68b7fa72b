package callback_api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	internal_orchestrator "github.com/curavoice/api/callback-api/internal/orchestrator"
	internal_telephony "github.com/curavoice/api/callback-api/internal/telephony"
	"github.com/curavoice/config"
	"github.com/curavoice/pkg/commons"
)

// CallbackApi exposes the callback-request endpoint and the two carrier
// webhooks.
type CallbackApi interface {
	RequestCallback(c *gin.Context)
	HandleCall(c *gin.Context)
	ProcessRecording(c *gin.Context)
}

type callbackApi struct {
	cfg          *config.AppConfig
	logger       commons.Logger
	orchestrator *internal_orchestrator.Orchestrator
	renderer     internal_markup.Renderer
}

func New(cfg *config.AppConfig, logger commons.Logger, orchestrator *internal_orchestrator.Orchestrator, renderer internal_markup.Renderer) CallbackApi {
	return &callbackApi{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orchestrator,
		renderer:     renderer,
	}
}

type requestCallbackBody struct {
	PhoneNumber   string `json:"phone_number" binding:"required"`
	Language      string `json:"language"`
	HealthConcern string `json:"health_concern"`
}

// RequestCallback places an outbound advice call. Unlike the webhook
// endpoints the caller here is a programmatic client, so failures are
// structured JSON errors.
func (api *callbackApi) RequestCallback(c *gin.Context) {
	var body requestCallbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	callSid, err := api.orchestrator.RequestCallback(c.Request.Context(), internal_orchestrator.CallbackRequest{
		PhoneNumber:   body.PhoneNumber,
		Language:      body.Language,
		HealthConcern: body.HealthConcern,
	})
	if err != nil {
		switch {
		case errors.Is(err, internal_orchestrator.ErrMissingPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, internal_telephony.ErrUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Telephony client not initialized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Callback requested successfully",
		"call_sid": callSid,
	})
}

// HandleCall is the carrier's call-connected webhook. It always answers 200
// with a renderable markup document; the carrier cannot do anything useful
// with an HTTP error mid-call.
func (api *callbackApi) HandleCall(c *gin.Context) {
	to := c.PostForm("To")
	doc := api.orchestrator.HandleCall(c.Request.Context(), to)
	api.respond(c, doc)
}

// ProcessRecording is the carrier's recording-ready webhook.
func (api *callbackApi) ProcessRecording(c *gin.Context) {
	to := c.PostForm("To")
	transcription := c.PostForm("TranscriptionText")
	doc := api.orchestrator.ProcessRecording(c.Request.Context(), to, transcription)
	api.respond(c, doc)
}

func (api *callbackApi) respond(c *gin.Context, doc *internal_markup.Document) {
	body, err := api.renderer.Render(doc)
	if err != nil {
		api.logger.Errorf("markup rendering failed, falling back to error document: %v", err)
		body, err = api.renderer.Render(api.orchestrator.ErrorDocument())
		if err != nil {
			// Nothing renderable left; an empty 200 at least ends the call
			// turn cleanly instead of dropping the line with a 5xx.
			api.logger.Errorf("fallback rendering failed: %v", err)
			c.Status(http.StatusOK)
			return
		}
	}
	c.Data(http.StatusOK, api.renderer.ContentType(), []byte(body))
}
