// Package api provides the HTTP API server and handlers for the MediaVault
// catalog backend.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/optionshub/mediavault-server/internal/auth"
	"github.com/optionshub/mediavault-server/internal/ratelimit"
	"github.com/optionshub/mediavault-server/internal/store"
)

// trackRateLimit bounds counter mutations per client IP so one visitor
// cannot inflate views or downloads.
const (
	trackRatePerSecond = 1
	trackRateBurst     = 5
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        *store.Store
	services     *Services
	sessions     *auth.SessionService
	trackLimiter *ratelimit.KeyedRateLimiter
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sessions *auth.SessionService, allowedOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", headerViewerID, headerViewerHandle},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(viewerMiddleware(sessions))

	humaConfig := huma.DefaultConfig("MediaVault API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:        st,
		services:     services,
		sessions:     sessions,
		trackLimiter: ratelimit.New(trackRatePerSecond, trackRateBurst),
		router:       router,
		api:          humaAPI,
		logger:       logger,
	}

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerVisitRoutes()
	s.registerEngagementRoutes()
	s.registerSessionRoutes()
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
