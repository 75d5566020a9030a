package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/ws"
)

// SetupRoutes builds the router with the hub injected. The REST surface
// doubles as the polling fallback transport: it reads and writes the same
// store the realtime channel does.
func SetupRoutes(h *hub.Hub, rules engine.Ruleset, logger *zap.Logger) http.Handler {
	api := &API{hub: h, rules: rules, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(CORS)

	r.Get("/healthz", api.Healthz())
	r.Get("/stages", api.Stages)
	r.Get("/characters", api.Characters)
	r.Get("/ws", ws.Handler(h, rules, logger))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", api.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", api.GetSession)
			r.Post("/", api.CreateSessionAt)
			r.Put("/", api.UpdateSession)
			r.Delete("/", api.DeleteSession)
		})
	})
	return r
}
