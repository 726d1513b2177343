// Package api provides the HTTP API server and handlers for the dramcellar
// application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/whwar9739/dramcellar/internal/ratelimit"
	"github.com/whwar9739/dramcellar/internal/service"
	"github.com/whwar9739/dramcellar/internal/store"
	"github.com/whwar9739/dramcellar/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	whiskies    *service.WhiskeyService
	bottles     *service.BottleService
	blends      *service.BlendService
	collections *service.CollectionService
	invitations *service.InvitationService
	tastings    *service.TastingService
	validator   *validation.Validator
	limiter     *ratelimit.KeyedLimiter
	registry    *prometheus.Registry
	router      *chi.Mux
	logger      *slog.Logger
}

// Services bundles the service dependencies of the server.
type Services struct {
	Whiskies    *service.WhiskeyService
	Bottles     *service.BottleService
	Blends      *service.BlendService
	Collections *service.CollectionService
	Invitations *service.InvitationService
	Tastings    *service.TastingService
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, svcs Services, limiter *ratelimit.KeyedLimiter, registry *prometheus.Registry, logger *slog.Logger) *Server {
	s := &Server{
		store:       st,
		whiskies:    svcs.Whiskies,
		bottles:     svcs.Bottles,
		blends:      svcs.Blends,
		collections: svcs.Collections,
		invitations: svcs.Invitations,
		tastings:    svcs.Tastings,
		validator:   validation.New(),
		limiter:     limiter,
		registry:    registry,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID", "X-User-Email"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireIdentity)

		r.Route("/whiskies", func(r chi.Router) {
			r.Get("/", s.handleListWhiskies)
			r.Get("/regions", s.handleListRegions)
			r.Get("/{id}", s.handleGetWhiskey)
			r.With(s.rateLimit).Post("/", s.handleCreateWhiskey)
			r.With(s.rateLimit).Patch("/{id}", s.handleUpdateWhiskey)
			r.With(s.rateLimit).Delete("/{id}", s.handleDeleteWhiskey)
		})

		r.Route("/bottles", func(r chi.Router) {
			r.Get("/", s.handleListInventory)
			r.Get("/pourable", s.handleListPourable)
			r.Get("/infinity", s.handleListInfinity)
			r.Get("/{id}", s.handleGetBottle)
			r.Get("/{id}/blends", s.handleGetBlendLedger)
			r.With(s.rateLimit).Post("/", s.handleCreateBottle)
			r.With(s.rateLimit).Patch("/{id}", s.handleUpdateBottle)
			r.With(s.rateLimit).Delete("/{id}", s.handleDeleteBottle)
		})

		r.With(s.rateLimit).Post("/blends", s.handleTransferBlend)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", s.handleListCollections)
			r.Get("/{id}", s.handleGetCollection)
			r.Get("/{id}/members", s.handleListMembers)
			r.Get("/{id}/bottles", s.handleListCollectionBottles)
			r.Get("/{id}/invitations", s.handleListCollectionInvitations)
			r.With(s.rateLimit).Post("/", s.handleCreateCollection)
			r.With(s.rateLimit).Delete("/{id}", s.handleDeleteCollection)
			r.With(s.rateLimit).Post("/{id}/invitations", s.handleCreateInvitation)
		})

		r.Route("/invitations", func(r chi.Router) {
			r.Get("/", s.handleListMyInvitations)
			r.With(s.rateLimit).Post("/{id}/accept", s.handleAcceptInvitation)
			r.With(s.rateLimit).Post("/{id}/decline", s.handleDeclineInvitation)
		})

		r.Route("/tastings", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Get("/{id}", s.handleGetSession)
			r.With(s.rateLimit).Post("/", s.handleCreateSession)
			r.With(s.rateLimit).Post("/{id}/notes", s.handleLogPour)
		})
	})
}
