// Package audiofile validates candidate audio file paths against the
// filesystem and a configured extension allow-list.
package audiofile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/soundleaf/soundleaf-server/internal/errors"
)

// DefaultExtensions is the built-in audio extension allow-list.
// Extensions are stored without the leading dot, lowercase.
var DefaultExtensions = []string{"mp3", "m4a", "flac", "wav", "ogg", "opus", "aac", "wma"}

// Validator checks that a path points at an existing regular file with an
// allow-listed audio extension. It is a pure predicate over filesystem state
// at call time; the inherent race between validation and a later read is
// accepted and handled downstream as a probe failure.
type Validator struct {
	extensions map[string]struct{}
}

// NewValidator creates a validator with the given extension allow-list.
// Extensions are matched case-insensitively, with or without a leading dot.
// An empty list means DefaultExtensions.
func NewValidator(extensions []string) *Validator {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}

	return &Validator{extensions: set}
}

// IsValid reports whether path resolves to an existing regular file with an
// allow-listed extension. Symlinks are followed; a dangling symlink, a
// directory, or a special file all fail.
func (v *Validator) IsValid(path string) bool {
	return v.Validate(path) == nil
}

// Validate is the typed-error form of IsValid, for internal diagnostics.
// The extractor collapses these errors before they reach the caller.
func (v *Validator) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NotFoundf("no such file: %s", path)
	}

	if !info.Mode().IsRegular() {
		return errors.Validationf("not a regular file: %s", path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return errors.Validationf("missing file extension: %s", path)
	}
	if _, ok := v.extensions[ext]; !ok {
		return errors.Unsupportedf("extension %q is not an allowed audio type", ext)
	}

	return nil
}

// Extensions returns a snapshot of the allow-list, in no particular order.
// Useful for health/diagnostic reporting.
func (v *Validator) Extensions() []string {
	exts := make([]string, 0, len(v.extensions))
	for ext := range v.extensions {
		exts = append(exts, ext)
	}
	return exts
}
