package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/callsight-ai/callsight/pkg/validator"

	"github.com/callsight-ai/callsight/internal/adapter/handler"
	"github.com/callsight-ai/callsight/internal/adapter/repository"
	"github.com/callsight-ai/callsight/internal/infrastructure/cache"
	"github.com/callsight-ai/callsight/internal/infrastructure/database"
	"github.com/callsight-ai/callsight/internal/infrastructure/storage"
	analysisuc "github.com/callsight-ai/callsight/internal/usecase/analysis"
	companyuc "github.com/callsight-ai/callsight/internal/usecase/company"
	scriptuc "github.com/callsight-ai/callsight/internal/usecase/script"
	transcriptuc "github.com/callsight-ai/callsight/internal/usecase/transcript"
	"github.com/callsight-ai/callsight/pkg/config"
	"github.com/callsight-ai/callsight/pkg/llm"
	"github.com/callsight-ai/callsight/pkg/stt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize Database
	logger.Info("connecting to database")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Redis
	logger.Info("connecting to redis")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize object storage
	logger.Info("connecting to object storage")
	objectStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		logger.Fatal("failed to connect to object storage", zap.Error(err))
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	scriptRepo := repository.NewScriptRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	// Initialize model routing and dispatch
	registry := llm.DefaultRegistry()
	dispatcher := llm.NewDispatcher(registry, llm.NewClientFactory(&cfg.LLM), logger)

	// Initialize transcription
	sttClient := stt.NewClient(&cfg.Assembly, logger)

	// Initialize usecases
	industryScripts := scriptuc.NewIndustryScripts(cfg.Analysis.ScriptDir, cfg.Analysis.ScriptCacheTTL, logger)
	scriptService := scriptuc.NewService(companyRepo, scriptRepo, industryScripts, logger)
	analysisCache := cache.NewAnalysisCache(redisClient, cfg.Analysis.ResultCacheTTL, logger)
	analysisService := analysisuc.NewService(dispatcher, scriptService, transcriptRepo, analysisRepo, analysisCache, logger)
	transcriptService := transcriptuc.NewService(transcriptRepo, sttClient, cfg.Assembly.MaxConcurrency, logger)
	companyService := companyuc.NewService(companyRepo, scriptRepo, objectStore, logger)

	// Initialize handlers and routes
	companyHandler := handler.NewCompany(companyService, logger)
	transcriptHandler := handler.NewTranscript(transcriptService, logger)
	analysisHandler := handler.NewAnalysis(analysisService, logger)

	router := handler.NewRouter(cfg, companyHandler, transcriptHandler, analysisHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
