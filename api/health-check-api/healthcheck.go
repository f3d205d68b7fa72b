package health_check_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curavoice/config"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/connectors"
)

type HealthCheckApi interface {
	Healthz(c *gin.Context)
	Readiness(c *gin.Context)
}

type healthCheckApi struct {
	cfg    *config.AppConfig
	logger commons.Logger
	sqlite connectors.SqliteConnector
}

func New(cfg *config.AppConfig, logger commons.Logger, sqlite connectors.SqliteConnector) HealthCheckApi {
	return &healthCheckApi{cfg: cfg, logger: logger, sqlite: sqlite}
}

func (api *healthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": api.cfg.Name,
		"version": api.cfg.Version,
	})
}

func (api *healthCheckApi) Readiness(c *gin.Context) {
	if api.sqlite != nil {
		if err := api.sqlite.Ping(c.Request.Context()); err != nil {
			api.logger.Errorf("readiness check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
