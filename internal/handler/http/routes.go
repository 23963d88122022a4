package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed(router))

	router.Use(h.withTraceID)
	router.Use(withRecover)
	router.Use(h.withLogging)
	router.Use(withSecurityHeaders)
	if len(h.cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
	}
	router.Use(withGZipRequest)
	router.Use(middleware.Compress(5, "application/json"))
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signUp)
		r.Post("/api/auth/signin", h.signIn)

		r.Get("/public/version", h.getServerVersion)
		r.Get("/public/build-info", h.getBuildInfo)

		r.Get("/v3/api-docs", h.apiDocs)
		r.Get(swaggerUIPath, http.RedirectHandler(swaggerUIPath+"/", http.StatusMovedPermanently).ServeHTTP)
		r.Get(swaggerUIPath+"/", h.swaggerUI)
		r.Get(swaggerUIPath+"/index.html", h.swaggerUI)

		r.Get("/actuator/health", h.readiness)
		r.Get("/actuator/health/liveness", h.liveness)
		r.Get("/actuator/health/readiness", h.readiness)
	})

	// routes of any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/me", h.me)
		r.Post("/api/user/admin", h.requestAdmin)

		r.Get("/api/card", h.listOwnCards)
		r.Post("/api/card/transfer", h.transfer)
		r.Get("/api/card/{cardId}/balance", h.cardBalance)
		r.Patch("/api/card/{cardId}/balance", h.changeBalance)
		r.Post("/api/card/{cardId}/status", h.requestCardStatus)
	})

	// administrator routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.adminOnly)

		r.Get("/admin/api/users", h.listUsers)

		r.Get("/admin/api/cards", h.listCards)
		r.Post("/admin/api/cards", h.createCard)
		r.Put("/admin/api/cards/{cardId}/status", h.updateCardStatus)
		r.Delete("/admin/api/cards/{cardId}", h.deleteCard)
	})

	return router
}
