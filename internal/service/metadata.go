// Package service contains the business logic layer between the HTTP API
// and the extraction core.
package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/logger"
)

// MetadataService answers metadata lookups for the desktop shell.
//
// It deliberately collapses every extraction failure (bad path, non-audio
// file, corrupt container) to an absent record: the shell renders "no
// metadata available" and never distinguishes the causes. Typed errors
// from the extractor are kept for debug logging only.
type MetadataService struct {
	extractor   *extract.Extractor
	logger      *logger.Logger
	concurrency int
}

// BatchResult pairs one requested path with its outcome.
type BatchResult struct {
	Path     string            `json:"path" doc:"Requested file path"`
	Metadata *extract.Metadata `json:"metadata" doc:"Extracted record, or null when the file yielded none"`
}

// NewMetadataService creates the metadata lookup service.
// concurrency bounds parallel extraction in batch lookups; zero means the
// number of available CPUs.
func NewMetadataService(extractor *extract.Extractor, concurrency int, log *logger.Logger) *MetadataService {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &MetadataService{
		extractor:   extractor,
		logger:      log,
		concurrency: concurrency,
	}
}

// GetMetadata returns the metadata record for path, or nil when the file
// is missing, not audio, or unreadable. It never returns an error.
func (s *MetadataService) GetMetadata(ctx context.Context, path string) *extract.Metadata {
	meta, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Debug("metadata extraction failed", "path", path, "error", err)
		return nil
	}
	return meta
}

// GetMetadataBatch extracts metadata for each path in parallel, bounded by
// the configured concurrency. Results come back in input order, each
// independently record-or-nil.
func (s *MetadataService) GetMetadataBatch(ctx context.Context, paths []string) []BatchResult {
	results := make([]BatchResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = BatchResult{
				Path:     path,
				Metadata: s.GetMetadata(gctx, path),
			}
			return nil
		})
	}

	// Workers never return errors; failures are already collapsed per path.
	_ = g.Wait()

	return results
}
