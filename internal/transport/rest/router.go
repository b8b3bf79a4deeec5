package rest

import (
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/roster"
	"github.com/frahmantamala/access-console/internal/session"
	"github.com/frahmantamala/access-console/internal/transport/middleware"
	"github.com/frahmantamala/access-console/internal/transport/swagger"
)

const APIPrefix = "/api/v1"

type Handlers struct {
	Health  *HealthHandler
	Catalog *catalog.Handler
	Roster  *roster.Handler
	Session *session.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, openAPISpec []byte, logger *slog.Logger) {
	router.Use(middleware.CORS())
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", openAPIHandler(openAPISpec))
	router.Handle("/swagger/*", swagger.Handler())

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/ping", h.Health.Ping)
		r.Get("/health", h.Health.Health)

		r.Get("/systems", h.Catalog.GetSystems)

		r.Route("/users", func(ur chi.Router) {
			ur.Get("/", h.Roster.ListUsers)         // GET /users?q=
			ur.Get("/{id}", h.Roster.GetUser)       // GET /users/:id
			ur.Delete("/{id}", h.Roster.DeleteUser) // DELETE /users/:id
		})

		r.Route("/sessions", func(sr chi.Router) {
			sr.Post("/", h.Session.OpenSession)
			sr.Route("/{id}", func(s chi.Router) {
				s.Get("/", h.Session.GetSession)
				s.Delete("/", h.Session.DiscardSession)
				s.Patch("/profile", h.Session.UpdateProfile)
				s.Put("/status", h.Session.SetStatus)
				s.Put("/permissions", h.Session.ApplySuggestions)
				s.Put("/permissions/{systemId}", h.Session.SetPermissionDetails)
				s.Post("/permissions/{systemId}/toggle", h.Session.TogglePermission)
				s.Post("/suggestions", h.Session.Suggest)
				s.Post("/save", h.Session.Save)
			})
		})
	})
}
