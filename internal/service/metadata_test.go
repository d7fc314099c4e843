package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/extract/extracttest"
	"github.com/soundleaf/soundleaf-server/internal/logger"
)

func newTestService(concurrency int) *MetadataService {
	log := logger.New(logger.Config{
		Writer: &bytes.Buffer{},
		Format: "json",
		Level:  slog.LevelError,
	})
	extractor := extract.NewExtractor(audiofile.NewValidator(nil))
	return NewMetadataService(extractor, concurrency, log)
}

func TestGetMetadata_Success(t *testing.T) {
	dir := t.TempDir()
	path := extracttest.WriteFLAC(t, dir, "track.flac", extracttest.FLACFixture{
		Title:        "Morning Light",
		Artist:       "Aurora Section",
		TotalSamples: 44100,
		WithComment:  true,
	})

	meta := newTestService(0).GetMetadata(context.Background(), path)
	require.NotNil(t, meta)
	require.NotNil(t, meta.Title)
	assert.Equal(t, "Morning Light", *meta.Title)
}

func TestGetMetadata_CollapsesAllFailuresToNil(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(0)

	// Missing file.
	assert.Nil(t, svc.GetMetadata(context.Background(), filepath.Join(dir, "missing.flac")))

	// Disallowed extension.
	assert.Nil(t, svc.GetMetadata(context.Background(), filepath.Join(dir, "notes.txt")))

	// Directory.
	assert.Nil(t, svc.GetMetadata(context.Background(), dir+string(filepath.Separator)))
}

func TestGetMetadataBatch_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()

	good := extracttest.WriteFLAC(t, dir, "good.flac", extracttest.FLACFixture{
		Title:        "Keeper",
		TotalSamples: 44100,
		WithComment:  true,
	})
	missing := filepath.Join(dir, "missing.flac")
	alsoGood := extracttest.WriteFLAC(t, dir, "also-good.flac", extracttest.FLACFixture{
		Title:        "Closer",
		TotalSamples: 88200,
		WithComment:  true,
	})

	paths := []string{good, missing, alsoGood}
	results := newTestService(2).GetMetadataBatch(context.Background(), paths)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	require.NotNil(t, results[0].Metadata)
	assert.Equal(t, "Keeper", *results[0].Metadata.Title)

	assert.Nil(t, results[1].Metadata, "failed path yields a null record, not an error")

	require.NotNil(t, results[2].Metadata)
	assert.Equal(t, "Closer", *results[2].Metadata.Title)
}

func TestGetMetadataBatch_Empty(t *testing.T) {
	results := newTestService(0).GetMetadataBatch(context.Background(), nil)
	assert.Empty(t, results)
}

func TestGetMetadataBatch_ManyPathsWithLowConcurrency(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 20)
	for i := range paths {
		paths[i] = extracttest.WriteFLAC(t, dir, fmt.Sprintf("track-%02d.flac", i), extracttest.FLACFixture{
			Title:        "Track",
			TotalSamples: 44100,
			WithComment:  true,
		})
	}

	results := newTestService(1).GetMetadataBatch(context.Background(), paths)
	require.Len(t, results, len(paths))
	for _, r := range results {
		require.NotNil(t, r.Metadata)
	}
}
