package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"ride-match-service/internal/app"
	"ride-match-service/internal/config"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires the snapshot backend, catalogues and services, then serves the HTTP API
// until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wire, err := app.NewWire(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer wire.Close()

	// Posting an offer may wait on the routing API when the estimator is ors.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wire.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}
}
