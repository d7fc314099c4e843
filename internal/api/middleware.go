package api

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/soundleaf/soundleaf-server/internal/http/response"
)

// envelopeVersion is the wire format version reported in every response.
// Bump only with a coordinated client release.
const envelopeVersion = 1

// ResponseEnvelope is the versioned wire format shared by every API
// response. Success responses carry data; error responses carry a flat
// error string plus code/message/details for clients that want structure.
type ResponseEnvelope struct {
	V       int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error summary"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message,omitempty" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope. Registered on the huma config before routes.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &ResponseEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return &ResponseEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// rateLimitMiddleware throttles requests per client address. It sits in
// front of the huma layer so rejected requests never reach a handler.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			response.TooManyRequests(w, "Too many requests", s.logger.Logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey derives the rate-limit bucket key from the request.
// RealIP middleware has already rewritten RemoteAddr when proxy headers
// are present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
