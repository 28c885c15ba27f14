package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/info", h.getPluginInfo)
		if h.metrics != nil {
			r.Method("GET", "/metrics", h.metrics)
		}
	})

	// operator routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync/contacts", h.syncContacts)
		r.With(h.verifyHash).Post("/api/changes", h.commitChange)

		r.Get("/api/anchors/{objectClass}", h.getAnchor)
		r.Delete("/api/anchors/{objectClass}", h.resetAnchor)

		r.Get("/api/cycles", h.listCycles)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
