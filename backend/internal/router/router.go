package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/meetiosdev/topics-api/backend/internal/handler"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/logger"
	mw "github.com/meetiosdev/topics-api/shared/middleware"
	"github.com/meetiosdev/topics-api/shared/middleware/metrics"
	rl "github.com/meetiosdev/topics-api/shared/middleware/ratelimiter"
)

// New creates the chi router with every route.
// IMPORTANT! a limiter mounted with Use counts requests for all endpoints of that group combined
func New(h *handler.Handler, cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(logger.Log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chimw.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.Cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"RateLimit-Limit", "RateLimit-Remaining", "Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	https := cfg.Public.HTTP.HTTPS

	// JSON endpoints: strict policy, no scripts or styles needed
	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeadersWithCSP(https, mw.APIPolicy))

		r.Get("/", h.Info)
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())

		// legacy paths, same handlers without the /api prefix
		r.Get("/topics", h.ListTopics)
		r.Get("/topics/{topicId}", h.GetTopic)
		r.Get("/topics/{topicId}/posts", h.GetTopicPosts)

		r.Route("/api", func(r chi.Router) {
			r.Use(mw.RateLimit(rl.PerWindow(cfg.Public.RateLimit.Requests, cfg.Public.RateLimit.Window), mw.GetIP))

			r.Get("/health", h.Health)
			r.Get("/topics", h.ListTopics)
			r.Get("/topics/{topicId}", h.GetTopic)
			r.Get("/topics/{topicId}/posts", h.GetTopicPosts)
			// reseed wipes the store: bursts of 5, then 1 per second for everyone combined
			r.With(mw.GlobalRateLimit(rl.New(1, 5, time.Hour))).Post("/seed", h.Seed)
		})
	})

	// documentation pages load swagger ui from the CDN
	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeadersWithCSP(https, mw.DocsPolicy))

		r.Get("/api-docs", h.SwaggerUI)
		r.Get("/api-docs/openapi.yaml", h.OpenAPI)
		r.Get("/api-docs/guide", h.Guide)
	})

	return r
}
