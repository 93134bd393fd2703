package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/otp-login-api/internal/config"
	"github.com/otp-login-api/internal/infrastructure/rediskv"
	"github.com/otp-login-api/internal/infrastructure/webhook"
	transporthttp "github.com/otp-login-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// The store client is created once at startup and injected; handlers
	// never initialise connections lazily.
	rdb, err := rediskv.NewClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	notifier := webhook.NewNotifier(cfg.WebhookURL, cfg.WebhookToken, cfg.NotifyTimeout)

	deps := &transporthttp.Deps{
		OTPRepo:     rediskv.NewOTPStore(rdb, cfg.StoreTimeout),
		SessionRepo: rediskv.NewSessionStore(rdb, cfg.StoreTimeout),
		Events:      notifier,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		// Still drain the notifier and close the store below.
		log.Printf("forced shutdown: %v", err)
	}

	notifier.Close()
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
	log.Println("Server stopped")
}
