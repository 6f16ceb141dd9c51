// Package router assembles the chi route tree:
//
//	POST   /api/auth/register
//	POST   /api/auth/login
//	GET    /api/students         (bearer)
//	POST   /api/students         (bearer)
//	GET    /api/students/{id}    (bearer)
//	PUT    /api/students/{id}    (bearer)
//	DELETE /api/students/{id}    (bearer)
//	GET    /healthz
//	GET    /metrics
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "github.com/aanand-mishra/student-registry/internal/http/handlers/auth"
	"github.com/aanand-mishra/student-registry/internal/http/handlers/student"
	"github.com/aanand-mishra/student-registry/internal/http/middleware"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

type Deps struct {
	Students student.Service
	Auth     authhandler.Service
	Tokens   middleware.TokenValidator
	Validate *validator.Validate
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authhandler.Register(d.Auth, d.Validate, d.Log))
		r.Post("/auth/login", authhandler.Login(d.Auth, d.Validate, d.Log))

		r.Route("/students", func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Tokens, d.Log))

			r.Get("/", student.GetList(d.Students, d.Log))
			r.Post("/", student.New(d.Students, d.Log))
			r.Get("/{id}", student.GetByID(d.Students, d.Log))
			r.Put("/{id}", student.Update(d.Students, d.Log))
			r.Delete("/{id}", student.Delete(d.Students, d.Log))
		})
	})

	return r
}
