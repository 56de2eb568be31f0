package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

const AdminTokenHeader = "X-Admin-Token"

type Handlers struct {
	Vote     *VoteHandler
	Score    *ScoreHandler
	Settings *SettingsHandler
	User     *UserHandler
	Health   *HealthHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	// AdminToken guards /v1/admin. The admin routes are not mounted when it
	// is empty.
	AdminToken string
	// Log receives middleware failures. Defaults to the standard logger.
	Log logrus.FieldLogger
}

func NewHandler(h Handlers, opts RouterOptions) http.Handler {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", AdminTokenHeader},
		MaxAge:         300,
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Health)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/vote", h.Vote.Vote)
		r.Get("/scores", h.Score.GetScores)

		if opts.AdminToken == "" {
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdminToken(opts.AdminToken, log))

			r.Get("/settings", h.Settings.GetSettings)
			r.Patch("/settings", h.Settings.UpdateSettings)
			r.Get("/users/{id}", h.User.GetUser)
			r.Put("/users/{id}/ban", h.User.SetBanned)
		})
	})

	return r
}

func requireAdminToken(token string, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeError(w, log, http.StatusUnauthorized, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
