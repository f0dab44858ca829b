// cmd/server/server.go
package main

import (
	"net/http"
	"time"

	"github.com/codr1/yeardots/internal/api"
	wallpaperapi "github.com/codr1/yeardots/internal/api/wallpaper"
	"github.com/codr1/yeardots/internal/config"
	"github.com/codr1/yeardots/internal/ratelimit"
	"github.com/codr1/yeardots/internal/wallpaper"
)

func newServer(cfg *config.Config, service *wallpaper.Service) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	limiter := ratelimit.New(&ratelimit.Config{
		MaxPerWindow: cfg.Server.RateLimit,
		Window:       time.Minute,
	})

	// Register routes
	registerRoutes(router, cfg, service, limiter)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	server.RegisterOnShutdown(limiter.Close)
	return server
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, service *wallpaper.Service, limiter *ratelimit.Limiter) {
	handlers := wallpaperapi.NewHandlers(service, cfg.Render.CacheControl)
	render := api.WithRateLimit(limiter, cfg.Server.TrustProxy)(http.HandlerFunc(handlers.HandleWallpaper))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/v1/themes", handlers.HandleThemes)

	// Wallpaper, on its own path and at the root
	mux.Handle(cfg.App.Path, render)
	if cfg.App.Path != "/" {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			render.ServeHTTP(w, r)
		})
	}
}
