package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/callsight-ai/callsight/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	companyHandler    *Company
	transcriptHandler *Transcript
	analysisHandler   *Analysis
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, companyHandler *Company, transcriptHandler *Transcript, analysisHandler *Analysis) *Router {
	return &Router{
		cfg:               cfg,
		companyHandler:    companyHandler,
		transcriptHandler: transcriptHandler,
		analysisHandler:   analysisHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupCompanyRoutes(v1)
	rt.setupTranscriptRoutes(v1)
}

// setupCompanyRoutes configures company and script routes
func (rt *Router) setupCompanyRoutes(g *echo.Group) {
	companyGroup := g.Group("/companies")

	companyGroup.POST("", rt.companyHandler.Create)
	companyGroup.GET("", rt.companyHandler.List)
	companyGroup.GET("/:id", rt.companyHandler.Get)
	companyGroup.POST("/:id/scripts", rt.companyHandler.UploadScript)
	companyGroup.GET("/:id/scripts", rt.companyHandler.ListScripts)
}

// setupTranscriptRoutes configures transcription and analysis routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	transcriptGroup.POST("", rt.transcriptHandler.Submit)
	transcriptGroup.GET("/:id", rt.transcriptHandler.Get)
	transcriptGroup.POST("/:id/analysis", rt.analysisHandler.Run)
	transcriptGroup.GET("/:id/analysis", rt.analysisHandler.Get)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
