// Package main is the entry point for the LeadPilot API server.
//
// @title LeadPilot API
// @version 1.0
// @description Sales lead dashboard backend: lead CRUD, AI scoring, outreach
// @description generation, voice calls and workflow automation.
//
// @contact.name LeadPilot Support
// @contact.email support@leadpilot.io
//
// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadpilot/leadpilot/config"
	"github.com/leadpilot/leadpilot/pkg/ai/llm"
	"github.com/leadpilot/leadpilot/pkg/airtable"
	"github.com/leadpilot/leadpilot/pkg/analytics"
	"github.com/leadpilot/leadpilot/pkg/api/handlers"
	"github.com/leadpilot/leadpilot/pkg/cache"
	"github.com/leadpilot/leadpilot/pkg/demo"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/export"
	"github.com/leadpilot/leadpilot/pkg/logger"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	custommiddleware "github.com/leadpilot/leadpilot/pkg/middleware"
	"github.com/leadpilot/leadpilot/pkg/outreach"
	"github.com/leadpilot/leadpilot/pkg/scoring"
	"github.com/leadpilot/leadpilot/pkg/vapi"
	"github.com/leadpilot/leadpilot/pkg/workflow"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	log.Printf("🚀 Starting LeadPilot API v%s (%s)", version, cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Sentry (optional)
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Printf("⚠️ Sentry initialization failed: %v", err)
		} else {
			log.Println("✅ Sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Redis vocabulary mirror (optional; empty URL disables it)
	var redisCache *cache.Client
	if cfg.RedisURL != "" {
		rc, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, score-label vocabulary will not be mirrored: %v", err)
		} else {
			redisCache = rc
			defer redisCache.Close()
		}
	}

	m := metrics.New()

	// Resolve the vendor strategy once at startup. Every handler depends on
	// the interfaces only; demo mode swaps all four vendors at the same time.
	var (
		store     domain.LeadStore
		scorer    domain.Scorer
		generator domain.OutreachGenerator
		telephony domain.Telephony
	)
	if cfg.DemoMode {
		demoStore := demo.NewStore()
		store = demoStore
		scorer = demo.NewScorer()
		generator = demo.NewOutreach()
		telephony = demo.NewTelephony(demoStore)
		log.Println("🎭 Demo mode enabled: serving seeded fixtures, no vendor calls")
	} else {
		airtableClient := airtable.NewClient(airtable.Config{
			APIKey:          cfg.AirtableAPIKey,
			BaseID:          cfg.AirtableBaseID,
			LeadsTable:      cfg.AirtableLeadsTable,
			ActivitiesTable: cfg.AirtableActivitiesTable,
		})
		var vocabCache scoring.VocabularyCache
		if redisCache != nil {
			vocabCache = redisCache
		}
		airtableClient.SetLabelResolver(scoring.NewResolver(airtableClient, vocabCache))
		store = airtableClient
		log.Println("✅ Airtable store initialized")

		llmClient := llm.NewOpenAIClient(llm.Config{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			Temperature: float32(cfg.OpenAITemperature),
			MaxTokens:   cfg.OpenAIMaxTokens,
		})
		scorer = scoring.NewLLMScorer(llmClient, log.Default())
		generator = outreach.NewGenerator(llmClient, log.Default())
		log.Println("✅ OpenAI client initialized")

		telephony = vapi.NewClient(vapi.Config{
			APIKey:      cfg.VapiAPIKey,
			AssistantID: cfg.VapiAssistantID,
			BaseURL:     cfg.VapiBaseURL,
		}, log.Default())
		log.Println("✅ Vapi client initialized")
	}

	scoringService := scoring.NewService(store, scorer, log.Default())
	analyticsService := analytics.NewService(store)
	exportService := export.NewService(store)
	workflowService := workflow.NewService(workflow.Config{
		HotLeadURL:       cfg.N8nHotLeadWebhook,
		ColdLeadURL:      cfg.N8nColdLeadWebhook,
		CallCompletedURL: cfg.N8nCallCompletedWebhook,
		Secret:           cfg.N8nWebhookSecret,
		Production:       cfg.IsProduction(),
	}, log.Default())
	log.Println("✅ Services initialized")

	// Handlers
	leadHandler := handlers.NewLeadHandler(store, scoringService, exportService, workflowService, m, log.Default())
	activityHandler := handlers.NewActivityHandler(store)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	outreachHandler := handlers.NewOutreachHandler(store, generator, m)
	callHandler := handlers.NewCallHandler(store, telephony, workflowService, m, log.Default())
	workflowHandler := handlers.NewWorkflowHandler(workflowService, m, cfg.DemoMode, log.Default())

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				appLogger.Error("request", "method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
			} else {
				appLogger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			}
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(m.Middleware())
	e.Use(echomiddleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(echomiddleware.Gzip())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.DefaultSecurityHeadersConfig()))

	rateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	e.Use(rateLimiter.RateLimitMiddleware())

	// Health and operational endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":    "LeadPilot API",
			"version": version,
			"status":  "ok",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.GET("/leads", leadHandler.ListLeads)
	v1.POST("/leads", leadHandler.CreateLead)
	v1.GET("/leads/:id", leadHandler.GetLead)
	v1.PATCH("/leads/:id", leadHandler.UpdateLead)
	v1.DELETE("/leads/:id", leadHandler.DeleteLead)
	v1.POST("/leads/:id/score", leadHandler.ScoreLead)
	v1.POST("/leads/bulk-score", leadHandler.BulkScoreLeads)
	v1.POST("/leads/import", leadHandler.ImportLeads)
	v1.GET("/leads/export", leadHandler.ExportLeads)
	v1.POST("/leads/:id/outreach", outreachHandler.GenerateOutreach)

	v1.GET("/activities", activityHandler.ListActivities)
	v1.POST("/activities", activityHandler.CreateActivity)
	v1.GET("/activities/lead/:id", activityHandler.ListLeadActivities)

	v1.GET("/calls", callHandler.ListCalls)
	v1.POST("/calls/schedule", callHandler.ScheduleCall)
	v1.POST("/calls/webhook", callHandler.CallWebhook)

	v1.POST("/workflows/trigger", workflowHandler.TriggerWorkflow)
	v1.POST("/workflows/webhook", workflowHandler.WorkflowWebhook,
		custommiddleware.WebhookAuth(workflowService.VerifySecret))

	v1.GET("/analytics/overview", analyticsHandler.GetOverview)
	v1.GET("/analytics/pipeline", analyticsHandler.GetPipeline)
	v1.GET("/analytics/sources", analyticsHandler.GetSources)
	v1.GET("/analytics/funnel", analyticsHandler.GetFunnel)

	// Start server
	go func() {
		addr := cfg.APIHost + ":" + cfg.APIPort
		log.Printf("✅ Server listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server shutdown failed: %v", err)
	}
	log.Println("✅ Server stopped")
}
