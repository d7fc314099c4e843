// Package di provides dependency injection configuration for the Soundleaf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/config"
	"github.com/soundleaf/soundleaf-server/internal/di/providers"
	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/logger"
	"github.com/soundleaf/soundleaf-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Extraction pipeline
	do.Provide(injector, providers.ProvideAudioValidator)
	do.Provide(injector, providers.ProvideExtractor)

	// Business services
	do.Provide(injector, providers.ProvideMetadataService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*audiofile.Validator](injector)
	_ = do.MustInvoke[*extract.Extractor](injector)
	_ = do.MustInvoke[*service.MetadataService](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
