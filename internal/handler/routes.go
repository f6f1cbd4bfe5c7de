package handler

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/security"
	"auth-service/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router : все зависимости, нужные для регистрации маршрутов
type Router struct {
	Auth            *AuthenticationHandler
	Users           *UserHandler
	Tenants         *TenantHandler
	Health          *HealthHandler
	AccessVerifier  ports.TokenVerifier
	RefreshVerifier ports.TokenVerifier
	Liveness        security.RecordLiveness
}

func (rt *Router) Register(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", rt.Health.Welcome)
	r.Get("/healthz", rt.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	authenticate := security.AuthenticateAccess(rt.AccessVerifier, util.WriteError)
	adminOnly := security.RequireRoles(util.WriteError, model.RoleAdmin)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", rt.Auth.Register)
		r.Post("/login", rt.Auth.Login)

		r.With(authenticate).Get("/self", rt.Auth.Self)
		r.With(security.ValidateRefresh(rt.RefreshVerifier, rt.Liveness, util.WriteError)).
			Post("/refresh", rt.Auth.Refresh)
		r.With(authenticate, security.ParseRefresh(rt.RefreshVerifier, util.WriteError)).
			Post("/logout", rt.Auth.Logout)
	})

	r.Route("/tenants", func(r chi.Router) {
		r.Use(authenticate, adminOnly)
		r.Post("/", rt.Tenants.CreateTenant)
		r.Get("/", rt.Tenants.ListTenants)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.Tenants.GetTenant)
			r.Patch("/", rt.Tenants.UpdateTenant)
			r.Delete("/", rt.Tenants.DeleteTenant)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticate, adminOnly)
		r.Post("/", rt.Users.CreateUser)
		r.Get("/", rt.Users.ListUsers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.Users.GetUser)
			r.Patch("/", rt.Users.UpdateUser)
			r.Delete("/", rt.Users.DeleteUser)
		})
	})
}
