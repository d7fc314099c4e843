// Package extract probes local audio files and produces normalized display
// metadata: title, artist, album, duration, and an embedded cover image
// encoded as a data URI.
package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/simonhull/audiometa"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/errors"
)

// fallbackCoverMIME is used when the container embeds a picture without
// declaring its MIME type.
const fallbackCoverMIME = "image/jpeg"

// Metadata is the display record produced for one audio file.
// Every field is independently optional; a nil pointer means the source
// file did not carry that piece of information.
type Metadata struct {
	Title    *string `json:"title,omitempty" doc:"Track title"`
	Artist   *string `json:"artist,omitempty" doc:"Track artist"`
	Album    *string `json:"album,omitempty" doc:"Album name"`
	Duration *uint64 `json:"duration,omitempty" doc:"Playback duration in whole seconds"`
	Cover    *string `json:"cover,omitempty" doc:"First embedded picture as a data URI (data:<mime>;base64,<payload>)"`
}

// Extractor reads display metadata from validated audio files.
// It is stateless; concurrent calls are safe.
type Extractor struct {
	validator *audiofile.Validator
}

// NewExtractor creates an extractor gated by the given path validator.
func NewExtractor(validator *audiofile.Validator) *Extractor {
	return &Extractor{validator: validator}
}

// Extract probes path and returns its metadata record.
//
// The path is re-validated first, so Extract is safe to call on
// unsanitized input. Failures return typed domain errors: not-found or
// validation errors for bad paths, unsupported-media errors for files
// the container probe rejects. Callers that need the original
// "record or nothing" contract collapse the error to an absent result.
//
// The record is all-or-nothing at the container level: once the probe
// succeeds, each field is populated best-effort and independently.
func (e *Extractor) Extract(ctx context.Context, path string) (*Metadata, error) {
	if err := e.validator.Validate(path); err != nil {
		return nil, err
	}

	// Probe by content inspection. Extension said audio; the container
	// decides. The file may also have vanished since validation - that
	// collapses into the same probe failure.
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnsupported, "probe audio container")
	}
	defer file.Close() //nolint:errcheck // read-only handle

	meta := &Metadata{
		Title:  optional(file.Tags.Title),
		Artist: optional(file.Tags.Artist),
		Album:  optional(file.Tags.Album),
	}

	// Duration comes from stream properties, not tags, so it survives a
	// tagless file. Truncated to whole seconds.
	duration := uint64(file.Audio.Duration / time.Second)
	meta.Duration = &duration

	if cover := encodeCover(file); cover != "" {
		meta.Cover = &cover
	}

	return meta, nil
}

// encodeCover returns the first embedded picture as a data URI, or ""
// when the file has no usable artwork. Artwork extraction failures
// degrade to "no cover"; they never fail the record.
func encodeCover(file *audiometa.File) string {
	artworks, err := file.ExtractArtwork()
	if err != nil || len(artworks) == 0 {
		return ""
	}

	// First picture only; additional embedded images are ignored.
	art := artworks[0]
	if len(art.Data) == 0 {
		return ""
	}

	mime := art.MIMEType
	if mime == "" {
		mime = fallbackCoverMIME
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(art.Data))
}

// optional maps an empty tag value to an absent field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
