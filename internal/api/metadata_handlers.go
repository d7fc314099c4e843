package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/soundleaf/soundleaf-server/internal/errors"
	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/service"
)

func (s *Server) registerMetadataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMetadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata",
		Summary:     "Get audio file metadata",
		Description: "Probes a local audio file and returns its display metadata. Files that are missing, not audio, or unreadable yield a null record rather than an error.",
		Tags:        []string{"Metadata"},
	}, s.handleGetMetadata)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMetadataBatch",
		Method:      http.MethodPost,
		Path:        "/api/v1/metadata/batch",
		Summary:     "Get metadata for multiple audio files",
		Description: "Probes each path in parallel and returns one result per path, in request order. Failures are per path; one bad file never fails the batch.",
		Tags:        []string{"Metadata"},
	}, s.handleGetMetadataBatch)
}

// GetMetadataInput is the query input for a single metadata lookup.
type GetMetadataInput struct {
	Path string `query:"path" required:"true" doc:"Filesystem path of the audio file"`
}

// MetadataResponse carries one metadata record in API responses.
type MetadataResponse struct {
	Metadata *extract.Metadata `json:"metadata" doc:"Extracted record, or null when the file yielded none"`
}

// GetMetadataOutput wraps the metadata response for Huma.
type GetMetadataOutput struct {
	Body MetadataResponse
}

func (s *Server) handleGetMetadata(ctx context.Context, input *GetMetadataInput) (*GetMetadataOutput, error) {
	meta := s.services.Metadata.GetMetadata(ctx, input.Path)

	return &GetMetadataOutput{
		Body: MetadataResponse{Metadata: meta},
	}, nil
}

// BatchMetadataRequest lists the paths to look up.
type BatchMetadataRequest struct {
	Paths []string `json:"paths" validate:"required,min=1,dive,required" doc:"Paths to probe, one record per path"`
}

// BatchMetadataInput wraps the batch request body for Huma.
type BatchMetadataInput struct {
	Body BatchMetadataRequest
}

// BatchMetadataResponse contains batch lookup results in API responses.
type BatchMetadataResponse struct {
	Results []service.BatchResult `json:"results" doc:"One result per requested path, in request order"`
}

// BatchMetadataOutput wraps the batch response for Huma.
type BatchMetadataOutput struct {
	Body BatchMetadataResponse
}

func (s *Server) handleGetMetadataBatch(ctx context.Context, input *BatchMetadataInput) (*BatchMetadataOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	// The batch cap is configured, so it can't live in a struct tag.
	if len(input.Body.Paths) > s.batchLimit {
		return nil, domainerrors.Validationf("too many paths: %d exceeds the batch limit of %d", len(input.Body.Paths), s.batchLimit)
	}

	results := s.services.Metadata.GetMetadataBatch(ctx, input.Body.Paths)

	return &BatchMetadataOutput{
		Body: BatchMetadataResponse{Results: results},
	}, nil
}
