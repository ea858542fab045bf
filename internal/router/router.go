package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	mw "github.com/pingspace-dev/pingspace/internal/middleware"
	"github.com/pingspace-dev/pingspace/internal/middleware/metrics"
	"github.com/pingspace-dev/pingspace/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Api-Key"},
		AllowCredentials: true,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.SignUp)
			r.Post("/signin", h.SignIn)
			r.Post("/signout", h.SignOut)
		})

		// Producer ingestion, authenticated by api key rather than JWT.
		r.Group(func(r chi.Router) {
			r.Use(mw.NeedApiKey(deps.ApiKey))
			r.Post("/pings", h.CreatePing)
		})

		// Member surface.
		r.Group(func(r chi.Router) {
			r.Use(mw.NeedAuth(deps.Jwt))

			r.Route("/spaces", func(r chi.Router) {
				r.Get("/", h.ListSpaces)
				r.Post("/", h.CreateSpace)

				r.Route("/{space}", func(r chi.Router) {
					r.Delete("/", h.DeleteSpace)
					r.Put("/pin", h.PinSpace)
					r.Post("/members", h.AddMember)

					r.Route("/api-keys", func(r chi.Router) {
						r.Get("/", h.ListApiKeys)
						r.Post("/", h.CreateApiKey)
					})

					r.Route("/topics", func(r chi.Router) {
						r.Get("/", h.ListTopics)
						r.Post("/", h.CreateTopic)

						r.Route("/{topic}", func(r chi.Router) {
							r.Delete("/", h.DeleteTopic)
							r.Post("/toggle-pin", h.TogglePinTopic)
							r.Get("/pings", h.ListPings)
							r.Post("/read", h.MarkPingsRead)
						})
					})
				})
			})
		})
	})

	return r
}
