package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"oilwatch-backend/internal/api"
	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	port := getenv("PORT", "8080")
	catalogPath := getenv("CATALOG_PATH", "")
	timeout := getenvInt("REQUEST_TIMEOUT_SECONDS", 30)

	params := catalog.Default()
	if catalogPath != "" {
		loaded, err := catalog.Load(catalogPath)
		if err != nil {
			logger.Error("failed to load parameter catalog", slog.String("path", catalogPath), slog.String("error", err.Error()))
			os.Exit(1)
		}
		params = loaded
		logger.Info("parameter catalog loaded", slog.String("path", catalogPath), slog.Int("parameters", len(params)))
	}

	handler := &api.Handler{
		Store:   session.NewStore(),
		Params:  params,
		Timeout: time.Duration(timeout) * time.Second,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(timeout+5) * time.Second))

	r.Get("/healthz", handler.HandleHealth)
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.Info("oilwatch listening", slog.String("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("error", err.Error()))
	}
}

func getenv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getenvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(val); err == nil {
		return parsed
	}
	return fallback
}
