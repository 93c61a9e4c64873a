package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-itinerary-planner/docs"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler       *itinerary.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
	// GenerateRateLimit caps generation calls per client IP per GenerateRateWindow.
	// Zero disables the limit.
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request ID, logging, recovery) is applied by the
// caller before mounting it.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	h := cfg.ItineraryHandler
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Route("/itineraries", func(r chi.Router) {
				r.With(generateLimiter(cfg)).Post("/generate", h.GenerateItinerary)
				r.Post("/", h.CreateItinerary)
				r.Get("/", h.ListItineraries)
				r.Get("/{id}", h.GetItinerary)
				r.Put("/{id}", h.UpdateItinerary)
				r.Delete("/{id}", h.DeleteItinerary)
				r.Get("/{id}/days/{day}", h.GetItineraryDay)
			})
		})
	})

	return r
}

func generateLimiter(cfg *Config) func(http.Handler) http.Handler {
	if cfg.GenerateRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := cfg.GenerateRateWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(cfg.GenerateRateLimit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "Too many generation requests, try again later")
		}),
	)
}
