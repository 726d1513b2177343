package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/whwar9739/dramcellar/internal/config"
	"github.com/whwar9739/dramcellar/internal/logger"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/ratelimit"
	"github.com/whwar9739/dramcellar/internal/service"
)

// ProvideRegistry provides the Prometheus metrics registry.
func ProvideRegistry(i do.Injector) (*prometheus.Registry, error) {
	return prometheus.NewRegistry(), nil
}

// ProvideMetrics provides the server metrics collectors.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	registry := do.MustInvoke[*prometheus.Registry](i)
	return metrics.New(registry), nil
}

// RateLimiterHandle wraps the rate limiter with shutdown capability.
// The limiter is nil when rate limiting is disabled.
type RateLimiterHandle struct {
	*ratelimit.KeyedLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.KeyedLimiter != nil {
		h.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-identity write rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled")
		return &RateLimiterHandle{}, nil
	}

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	log.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)

	return &RateLimiterHandle{KeyedLimiter: limiter}, nil
}

// ProvideReconciler provides the inventory reconciler.
func ProvideReconciler(i do.Injector) (*service.Reconciler, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReconciler(storeHandle.Store, log.Logger, m), nil
}

// ProvideWhiskeyService provides the whiskey catalog service.
func ProvideWhiskeyService(i do.Injector) (*service.WhiskeyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWhiskeyService(storeHandle.Store, log.Logger), nil
}

// ProvideBottleService provides the bottle inventory service.
func ProvideBottleService(i do.Injector) (*service.BottleService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reconciler := do.MustInvoke[*service.Reconciler](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBottleService(storeHandle.Store, reconciler, log.Logger), nil
}

// ProvideBlendService provides the infinity bottle blending service.
func ProvideBlendService(i do.Injector) (*service.BlendService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBlendService(storeHandle.Store, log.Logger, m), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, log.Logger), nil
}

// ProvideInvitationService provides the collection invitation service.
func ProvideInvitationService(i do.Injector) (*service.InvitationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInvitationService(storeHandle.Store, log.Logger), nil
}

// ProvideTastingService provides the tasting session service.
func ProvideTastingService(i do.Injector) (*service.TastingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTastingService(storeHandle.Store, log.Logger, m), nil
}
