package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/otp-login-api/internal/application/otp"
	"github.com/otp-login-api/internal/application/session"
	"github.com/otp-login-api/internal/config"
	"github.com/otp-login-api/internal/transport/http/handler"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpSvc := otp.NewService(deps.OTPRepo, deps.Events)
	sessionSvc := session.NewService(deps.SessionRepo, deps.Events)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc, sessionSvc, cfg.IsDevelopment())
	sessionH := handler.NewSessionHandler(sessionSvc, cfg.IsDevelopment())

	// Paths are the wire contract the front-end consumes; chi answers 405
	// for any method not routed here.
	r.Post("/otp/issue", otpH.Issue)
	r.Post("/otp/resend", otpH.Resend)
	r.Post("/otp/verify", otpH.Verify)
	r.Get("/session/check", sessionH.Check)
	r.Post("/session/check", sessionH.Check)
	r.Get("/health-check/{action}", healthH.Ping)

	return r
}
