package callback_routers

import (
	"github.com/gin-gonic/gin"

	callbackApi "github.com/curavoice/api/callback-api/api"
	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	internal_orchestrator "github.com/curavoice/api/callback-api/internal/orchestrator"
	"github.com/curavoice/config"
	"github.com/curavoice/pkg/commons"
)

func CallbackApiRoute(
	cfg *config.AppConfig,
	engine *gin.Engine,
	logger commons.Logger,
	orchestrator *internal_orchestrator.Orchestrator,
	renderer internal_markup.Renderer,
) {
	cbApi := callbackApi.New(cfg, logger, orchestrator, renderer)
	apiv1 := engine.Group("")
	{
		// programmatic client
		apiv1.POST("/api/request-callback", cbApi.RequestCallback)

		// carrier webhooks
		apiv1.POST("/handle-call", cbApi.HandleCall)
		apiv1.POST("/process-recording", cbApi.ProcessRecording)
	}
}
