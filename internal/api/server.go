// Package api provides the HTTP API server and handlers for the Soundleaf core.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/config"
	"github.com/soundleaf/soundleaf-server/internal/logger"
	"github.com/soundleaf/soundleaf-server/internal/ratelimit"
	"github.com/soundleaf/soundleaf-server/internal/service"
	"github.com/soundleaf/soundleaf-server/internal/validation"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Metadata *service.MetadataService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	pathRules  *audiofile.Validator
	validator  *validation.Validator
	limiter    *ratelimit.KeyedRateLimiter
	router     *chi.Mux
	api        huma.API
	logger     *logger.Logger
	batchLimit int
}

// NewServer creates a new HTTP server with all routes configured.
// limiter may be nil when rate limiting is disabled.
func NewServer(cfg *config.Config, services *Services, pathRules *audiofile.Validator, limiter *ratelimit.KeyedRateLimiter, log *logger.Logger) *Server {
	s := &Server{
		services:   services,
		pathRules:  pathRules,
		validator:  validation.New(),
		limiter:    limiter,
		router:     chi.NewRouter(),
		logger:     log,
		batchLimit: cfg.Audio.BatchLimit,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Soundleaf Core API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerMetadataRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.limiter != nil {
		s.router.Use(s.rateLimitMiddleware)
	}
}
