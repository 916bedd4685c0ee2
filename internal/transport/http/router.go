package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uniform-shop-api/internal/application/auth"
	"github.com/uniform-shop-api/internal/application/invite"
	"github.com/uniform-shop-api/internal/application/supplier"
	"github.com/uniform-shop-api/internal/application/token"
	"github.com/uniform-shop-api/internal/config"
	"github.com/uniform-shop-api/internal/domain"
	"github.com/uniform-shop-api/internal/transport/http/handler"
	appmiddleware "github.com/uniform-shop-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10. Applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	tokenSvc := token.NewService(token.ServiceDeps{
		Store:            deps.EmailTokenRepo,
		VerifyEmailTTL:   cfg.VerifyEmailTTL,
		ChangeEmailTTL:   cfg.ChangeEmailTTL,
		ResetPasswordTTL: cfg.ResetPasswordTTL,
	})
	inviteSvc := invite.NewService(invite.ServiceDeps{
		Store: deps.InviteRepo,
		TTL:   cfg.InviteTTL,
	})
	supplierSvc := supplier.NewService(deps.SupplierRepo)
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:     deps.UserRepo,
		SupplierRepo: deps.SupplierRepo,
		Tokens:       tokenSvc,
		Invites:      inviteSvc,
		Mailer:       deps.Mailer,
		JWTProvider:  deps.JWTProvider,
		BaseURL:      cfg.PublicBaseURL,
	})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(authSvc)
	sessionH := handler.NewSessionHandler(authSvc)
	pwH := handler.NewPasswordResetHandler(authSvc)
	verifyH := handler.NewEmailVerifyHandler(authSvc)
	changeH := handler.NewEmailChangeHandler(authSvc)
	inviteH := handler.NewInviteHandler(authSvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/password-reset/{action}", pwH.Action)
		r.With(sensitiveRL.Limit).Post("/verify-email/{action}", verifyH.Action)
		r.With(sensitiveRL.Limit).Post("/change-email/confirm", changeH.Confirm)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/change-email/request", changeH.Request)
			r.Post("/invites/accept", inviteH.Accept)
			r.Get("/suppliers/{id}", supplierH.Get)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/invites", inviteH.Create)
				r.Post("/suppliers", supplierH.Create)
			})
		})
	})

	return r
}
