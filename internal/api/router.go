package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the REST and WebSocket surface. hub may be nil when the
// WebSocket feed is disabled.
func NewRouter(handler *Handler, hub *Hub, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(2 * time.Minute))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/matches", handler.GetMatches)
		r.Get("/matches/update", handler.TriggerRefresh)
		r.Get("/live/update", handler.TriggerLiveUpdate)
		r.Post("/predict/custom", handler.PredictCustom)
		r.Get("/sports", handler.GetSports)
	})

	if hub != nil {
		r.Get("/ws/matches", hub.ServeWS)
	}

	return r
}
