package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Route is a service handler and the path prefix it serves.
type Route struct {
	Path    string
	Handler http.Handler
}

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Routes are the RPC services to mount.
	Routes []Route

	// Metrics serves /metrics when non-nil.
	Metrics http.Handler

	// AllowedOrigins for browser clients. Empty allows any origin.
	AllowedOrigins []string
}

// NewRouter builds the HTTP handler for the server: RPC services, a health
// check and the metrics endpoint behind CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	for _, route := range cfg.Routes {
		r.Handle(route.Path+"*", route.Handler)
	}

	return newCORS(cfg.AllowedOrigins).Handler(r)
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		// Credentials are sent as bearer tokens, never cookies.
		AllowCredentials: false,
	})
}
