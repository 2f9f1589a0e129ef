package server

import (
	"io"
	"net/http"

	"github.com/vector-geodezja/contact-api/internal/api/handlers"
	"github.com/vector-geodezja/contact-api/internal/api/middleware"
	"github.com/vector-geodezja/contact-api/internal/config"
	"github.com/vector-geodezja/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, contactHandler *handlers.ContactHandler) *Server {
	// Set release mode for production
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   10,
		Burst: 20,
	}))
	router.Use(middleware.RequestLogger())

	// Unsupported methods on known paths get a JSON 405
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.HandleError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler()
	router.GET("/healthz", healthHandler.Check)

	// Contact routes
	v1 := router.Group("/api/v1")
	v1.POST("/contact/send", contactHandler.Submit)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Router exposes the underlying engine, used by the tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Port)
}
