package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	internal_calllog "github.com/curavoice/api/callback-api/internal/calllog"
	internal_inference "github.com/curavoice/api/callback-api/internal/inference"
	internal_anthropic_inference "github.com/curavoice/api/callback-api/internal/inference/anthropic"
	internal_openai_inference "github.com/curavoice/api/callback-api/internal/inference/openai"
	internal_markup "github.com/curavoice/api/callback-api/internal/markup"
	internal_ncco_markup "github.com/curavoice/api/callback-api/internal/markup/ncco"
	internal_twiml_markup "github.com/curavoice/api/callback-api/internal/markup/twiml"
	internal_orchestrator "github.com/curavoice/api/callback-api/internal/orchestrator"
	internal_session "github.com/curavoice/api/callback-api/internal/session"
	internal_telephony "github.com/curavoice/api/callback-api/internal/telephony"
	internal_twilio_telephony "github.com/curavoice/api/callback-api/internal/telephony/twilio"
	internal_vonage_telephony "github.com/curavoice/api/callback-api/internal/telephony/vonage"
	callback_routers "github.com/curavoice/api/callback-api/router"
	"github.com/curavoice/config"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/connectors"
)

func main() {
	v, err := config.InitConfig()
	if err != nil {
		log.Fatalf("failed to initialize config: %v", err)
	}
	cfg, err := config.GetApplicationConfig(v)
	if err != nil {
		log.Fatalf("failed to load application config: %v", err)
	}

	logger, err := commons.NewApplicationLogger(
		commons.WithLevel(cfg.LogLevel),
		commons.WithLogFile(cfg.LogFile),
	)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlite, err := connectors.NewSqliteConnector(cfg.CallLog.Dsn, logger)
	if err != nil {
		logger.Errorf("failed to open call log database: %v", err)
	}

	var callLog internal_calllog.Store
	if sqlite != nil {
		callLog, err = internal_calllog.NewStore(sqlite, logger)
		if err != nil {
			logger.Errorf("failed to initialize call log: %v", err)
		}
	}

	// Integration failures are logged, not fatal: the orchestrator degrades
	// to the speakable fallbacks so callback webhooks stay answerable.
	dialer := buildDialer(cfg, logger)
	generator := buildGenerator(cfg, logger)
	renderer := buildRenderer(cfg)

	sessions := internal_session.NewStore(logger)
	if cfg.Session.Ttl > 0 {
		interval := cfg.Session.SweepInterval
		if interval <= 0 {
			interval = time.Minute
		}
		sessions.StartJanitor(ctx, cfg.Session.Ttl, interval)
	}

	orchestrator := internal_orchestrator.New(logger, sessions, internal_markup.NewBuilder(),
		internal_orchestrator.WithDialer(dialer),
		internal_orchestrator.WithGenerator(generator),
		internal_orchestrator.WithCallLog(callLog),
		internal_orchestrator.WithAnswerURL(strings.TrimRight(cfg.PublicBaseUrl, "/")+"/handle-call"),
		internal_orchestrator.WithInferenceTimeout(cfg.Inference.Timeout),
	)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	callback_routers.HealthCheckRoutes(cfg, engine, logger, sqlite)
	callback_routers.CallbackApiRoute(cfg, engine, logger, orchestrator, renderer)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Infof("%s %s listening on %s", cfg.Name, cfg.Version, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Errorf("server exited: %v", err)
	}
}

func buildDialer(cfg *config.AppConfig, logger commons.Logger) internal_telephony.Dialer {
	var (
		dialer internal_telephony.Dialer
		err    error
	)
	switch cfg.Telephony.Provider {
	case "vonage":
		dialer, err = internal_vonage_telephony.NewVonage(logger,
			cfg.Telephony.Vonage.ApplicationId,
			cfg.Telephony.Vonage.PrivateKey,
			cfg.Telephony.Vonage.FromNumber)
	default:
		dialer, err = internal_twilio_telephony.NewTwilio(logger,
			cfg.Telephony.Twilio.AccountSid,
			cfg.Telephony.Twilio.AuthToken,
			cfg.Telephony.Twilio.FromNumber)
	}
	if err != nil {
		logger.Errorf("failed to initialize telephony client: %v", err)
		return nil
	}
	return dialer
}

func buildGenerator(cfg *config.AppConfig, logger commons.Logger) internal_inference.Generator {
	var (
		generator internal_inference.Generator
		err       error
	)
	switch cfg.Inference.Provider {
	case "anthropic":
		generator, err = internal_anthropic_inference.NewAnthropic(logger, cfg.Inference.ApiKey, cfg.Inference.Model)
	default:
		generator, err = internal_openai_inference.NewOpenAI(logger, cfg.Inference.ApiKey, cfg.Inference.Model)
	}
	if err != nil {
		logger.Errorf("failed to initialize inference client: %v", err)
		return nil
	}
	return generator
}

func buildRenderer(cfg *config.AppConfig) internal_markup.Renderer {
	if cfg.Telephony.Provider == "vonage" {
		return internal_ncco_markup.NewRenderer()
	}
	return internal_twiml_markup.NewRenderer()
}
