package providers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/whwar9739/dramcellar/internal/api"
	"github.com/whwar9739/dramcellar/internal/config"
	"github.com/whwar9739/dramcellar/internal/logger"
	"github.com/whwar9739/dramcellar/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)
	registry := do.MustInvoke[*prometheus.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := api.Services{
		Whiskies:    do.MustInvoke[*service.WhiskeyService](i),
		Bottles:     do.MustInvoke[*service.BottleService](i),
		Blends:      do.MustInvoke[*service.BlendService](i),
		Collections: do.MustInvoke[*service.CollectionService](i),
		Invitations: do.MustInvoke[*service.InvitationService](i),
		Tastings:    do.MustInvoke[*service.TastingService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, limiterHandle.KeyedLimiter, registry, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
