// Package di provides dependency injection configuration for the Dramcellar server.
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/whwar9739/dramcellar/internal/config"
	"github.com/whwar9739/dramcellar/internal/di/providers"
	"github.com/whwar9739/dramcellar/internal/logger"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideRegistry)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideRateLimiter)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideReconciler)
	do.Provide(injector, providers.ProvideWhiskeyService)
	do.Provide(injector, providers.ProvideBottleService)
	do.Provide(injector, providers.ProvideBlendService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideInvitationService)
	do.Provide(injector, providers.ProvideTastingService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services in dependency order.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*prometheus.Registry](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.Reconciler](injector)
	_ = do.MustInvoke[*service.WhiskeyService](injector)
	_ = do.MustInvoke[*service.BottleService](injector)
	_ = do.MustInvoke[*service.BlendService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.InvitationService](injector)
	_ = do.MustInvoke[*service.TastingService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
