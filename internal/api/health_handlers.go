package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy or degraded"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or degraded"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	extractorHealth := s.checkExtractor()
	components["extractor"] = extractorHealth
	if extractorHealth.Status != "healthy" {
		overall = "degraded"
	}

	components["ratelimit"] = s.checkRateLimiter()

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkExtractor reports the allow-list backing the extraction pipeline.
func (s *Server) checkExtractor() ComponentHealth {
	// Handle nil validator (e.g., in tests)
	if s.pathRules == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "path validator not configured",
		}
	}

	exts := s.pathRules.Extensions()
	return ComponentHealth{
		Status:  "healthy",
		Message: fmt.Sprintf("%d allowed extensions: %s", len(exts), strings.Join(exts, ", ")),
	}
}

// checkRateLimiter reports whether request throttling is active.
func (s *Server) checkRateLimiter() ComponentHealth {
	if s.limiter == nil {
		return ComponentHealth{
			Status:  "healthy",
			Message: "rate limiting disabled",
		}
	}

	return ComponentHealth{Status: "healthy"}
}
