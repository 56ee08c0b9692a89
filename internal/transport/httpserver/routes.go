package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/internal/ratelimit"
	"dogwalk-app-go/internal/transport/httpserver/handler"
	authmw "dogwalk-app-go/internal/transport/httpserver/middleware"
	"dogwalk-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	matchLimiter := ratelimit.New(cfg.Matches.RateLimitRPS, cfg.Matches.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/users/me", handlers.GetMe)
			r.Patch("/users/me", handlers.UpdateMe)

			r.Get("/keywords", handlers.ListKeywords)

			r.Get("/dogs", handlers.ListDogs)
			r.Post("/dogs", handlers.CreateDog)
			r.Get("/dogs/{id}", handlers.GetDog)
			r.Patch("/dogs/{id}", handlers.UpdateDog)
			r.Delete("/dogs/{id}", handlers.DeleteDog)

			r.Get("/groups", handlers.ListGroups)
			r.Post("/groups", handlers.CreateGroup)
			r.Get("/groups/{id}", handlers.GetGroup)
			r.Patch("/groups/{id}", handlers.UpdateGroup)
			r.Delete("/groups/{id}", handlers.DeleteGroup)
			r.Get("/groups/{id}/memberships", handlers.ListGroupMemberships)
			r.Get("/groups/{id}/walks", handlers.ListGroupWalks)
			r.Get("/groups/{id}/stats", handlers.GetGroupStats)
			r.Get("/groups/{id}/stats/walks", handlers.GetGroupWalkTimeseries)

			r.Post("/group_memberships", handlers.CreateMembership)
			r.Patch("/group_memberships/{id}", handlers.UpdateMembership)
			r.Delete("/group_memberships/{id}", handlers.DeleteMembership)

			r.Post("/walks", handlers.CreateWalk)
			r.Get("/walks/{id}", handlers.GetWalk)

			r.With(authmw.RateLimitByUser(matchLimiter, log)).Post("/matches", handlers.RecordMatch)
			r.Get("/matches/mutual", handlers.ListMutualMatches)
		})
	})

	return r
}
