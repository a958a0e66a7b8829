package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/handlers"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	HealthHandler  *handlers.HealthHandler
	FundingHandler *handlers.FundingHandler
	InviteHandler  *handlers.InviteHandler
	AdminHandler   *handlers.AdminHandler
	StripeHandler  *handlers.StripeHandler
	GithubHandler  *handlers.GithubHandler
	RequireSession func(http.Handler) http.Handler // session cookie for /funding/*, /invites/* etc.
	RequireAdmin   func(http.Handler) http.Handler // X-Admin-Secret for /admin/*
	OAuthBegin     http.HandlerFunc                // GET /auth/github
	OAuthCallback  http.HandlerFunc                // GET /auth/github/callback
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Health)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.Get("/verify-email", cfg.AuthHandler.VerifyEmail)
		if cfg.OAuthBegin != nil {
			r.Get("/github", cfg.OAuthBegin)
		}
		if cfg.OAuthCallback != nil {
			r.Get("/github/callback", cfg.OAuthCallback)
		}
		// Routes that require a live session.
		if cfg.RequireSession != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireSession)
				r.Post("/send-verification-email", cfg.AuthHandler.SendVerificationEmail)
			})
		}
	})

	if cfg.RequireSession != nil {
		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/me", cfg.AuthHandler.Me)
		})
	}

	if cfg.FundingHandler != nil && cfg.RequireSession != nil {
		r.Route("/funding", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/balance", cfg.FundingHandler.Balance)
			r.Get("/issues", cfg.FundingHandler.ListIssues)
			r.Post("/issues/fund", cfg.FundingHandler.FundIssue)
			r.Post("/issues/manage", cfg.FundingHandler.ManageIssue)
			r.Post("/issues/state", cfg.FundingHandler.UpdateIssueState)
		})
	}

	if cfg.InviteHandler != nil && cfg.RequireSession != nil {
		r.Route("/invites", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Post("/company/accept", cfg.InviteHandler.AcceptCompanyInvite)
			r.Post("/repository/accept", cfg.InviteHandler.AcceptRepositoryInvite)
		})
	}

	if cfg.AdminHandler != nil && cfg.RequireAdmin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAdmin)
			r.Post("/companies", cfg.AdminHandler.CreateCompany)
			r.Post("/companies/address", cfg.AdminHandler.SetCompanyAddress)
			r.Post("/companies/invite", cfg.AdminHandler.CreateCompanyInvite)
			r.Post("/repositories/invite", cfg.AdminHandler.CreateRepositoryInvite)
			r.Post("/invoices", cfg.AdminHandler.CreateManualInvoice)
			r.Post("/invoices/paid", cfg.AdminHandler.SetManualInvoicePaid)
			if cfg.StripeHandler != nil {
				r.Post("/stripe/customers", cfg.StripeHandler.RecordCustomer)
				r.Post("/stripe/products", cfg.StripeHandler.RecordProduct)
				r.Post("/stripe/invoices", cfg.StripeHandler.RecordInvoice)
			}
			if cfg.GithubHandler != nil {
				r.Post("/github/sync", cfg.GithubHandler.Sync)
			}
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
