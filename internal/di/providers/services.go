package providers

import (
	"github.com/samber/do/v2"

	"github.com/soundleaf/soundleaf-server/internal/config"
	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/logger"
	"github.com/soundleaf/soundleaf-server/internal/service"
)

// ProvideMetadataService provides the metadata lookup service.
func ProvideMetadataService(i do.Injector) (*service.MetadataService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	extractor := do.MustInvoke[*extract.Extractor](i)

	return service.NewMetadataService(extractor, cfg.Audio.BatchConcurrency, log), nil
}
