package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plume/app/cache"
	"plume/app/routes"
	"plume/internal/config"
	"plume/internal/logger"

	"github.com/dgraph-io/badger/v4"
)

// RunAppServer starts the blog service and blocks until shutdown.
func RunAppServer(cfg *config.Config) {
	log := logger.New()

	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Error("service", "failed to open database", err)
		osExit(1)
		return
	}
	defer db.Close()

	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		store = cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPass)
	default:
		store = cache.NewBadgerStore(db)
	}

	router := routes.Setup(routes.Options{
		DB:            db,
		Cache:         store,
		ViewsDir:      cfg.TemplatesDir,
		StaticDir:     cfg.StaticDir,
		UploadsDir:    cfg.UploadsDir,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		CacheWindow:   cfg.CacheWindow,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("service", "blog service listening on "+cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("service", "server error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("service", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("service", "graceful shutdown failed", err)
	}
}
