package providers

import (
	"github.com/samber/do/v2"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/config"
	"github.com/soundleaf/soundleaf-server/internal/extract"
)

// ProvideAudioValidator provides the audio path validator.
func ProvideAudioValidator(i do.Injector) (*audiofile.Validator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return audiofile.NewValidator(cfg.Audio.Extensions), nil
}

// ProvideExtractor provides the metadata extractor.
func ProvideExtractor(i do.Injector) (*extract.Extractor, error) {
	pathRules := do.MustInvoke[*audiofile.Validator](i)
	return extract.NewExtractor(pathRules), nil
}
