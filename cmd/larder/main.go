// cmd/larder/main.go
//
// Larder – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start daily rotating logger (tees to console when in a TTY).
//
//  2. Load config: .env → conf/global.yaml → LARDER_ env overrides,
//     with Vault resolution for the store password.
//
//  3. Open the configured store backend (mysql / badger / csv).
//
//  4. Load the static recipe catalog.
//
//  5. Build the pantry cache and hydrate it from the store.
//
//  6. Serve the chi router (API + /metrics + /healthz) with hardened
//     timeouts; shut down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yanizio/larder/internal/catalog"
	"github.com/yanizio/larder/internal/config"
	"github.com/yanizio/larder/internal/logger"
	"github.com/yanizio/larder/internal/middleware"
	"github.com/yanizio/larder/internal/pantry"
	"github.com/yanizio/larder/internal/server"
	"github.com/yanizio/larder/internal/store"
	"github.com/yanizio/larder/internal/web"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logOut.Fatalf("open %s store: %v", cfg.Store.Driver, err)
	}
	defer st.Close()
	logOut.Infow("store online", "driver", cfg.Store.Driver)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logOut.Fatalf("load catalog: %v", err)
	}

	cache := pantry.NewCache(st)
	if err := cache.Load(context.Background()); err != nil {
		logOut.Fatalf("load pantry: %v", err)
	}

	if cfg.Geo.MMDBPath != "" {
		if err := web.InitGeo(cfg.Geo.MMDBPath); err != nil {
			logOut.Warnw("geo enrichment disabled", "err", err)
		}
	}

	api := web.NewAPI(cache, cat)
	handler := api.Router()
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)

	errCh := make(chan error, 1)
	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalf("http server: %v", err)
		}
	case sig := <-stop:
		logOut.Infow("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logOut.Errorw("shutdown", "err", err)
		}
	}
}
