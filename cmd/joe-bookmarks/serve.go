package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/joe-bookmarks/internal/api"
	"github.com/joestump/joe-bookmarks/internal/auth"
	"github.com/joestump/joe-bookmarks/internal/cache"
	"github.com/joestump/joe-bookmarks/internal/config"
	"github.com/joestump/joe-bookmarks/internal/db"
	"github.com/joestump/joe-bookmarks/internal/handler"
	"github.com/joestump/joe-bookmarks/internal/logger"
	"github.com/joestump/joe-bookmarks/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bookmarkStore := store.NewBookmarkStore(database)
			var bookmarks store.BookmarkStoreIface = bookmarkStore
			if cfg.CacheEnabled() {
				rc, err := cache.Connect(ctx, cache.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
					TTL:      cfg.Redis.TTL,
				})
				if err != nil {
					return err
				}
				defer func() { _ = rc.Close() }()
				bookmarks = store.NewCachedBookmarkStore(bookmarkStore, rc, log)
				log.Info("bookmark cache enabled", logger.String("addr", cfg.Redis.Addr))
			}

			router := handler.NewRouter(handler.Deps{
				API: api.Deps{
					BearerAuth: auth.NewBearerTokenMiddleware(cfg.APIToken, log),
					Bookmarks:  bookmarks,
					Logger:     log,
					DevErrors:  cfg.IsDevelopment(),
				},
				Probe:             bookmarkStore,
				Logger:            log,
				AccessLog:         cfg.Env != config.EnvTest,
				RequestTimeout:    cfg.HTTP.RequestTimeout,
				RateLimit:         handler.RateLimitConfig{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
				CORSAllowedOrigin: cfg.CORSAllowedOrigin,
				TrustProxy:        cfg.TrustProxy,
				StartTime:         startTime,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      cfg.HTTP.RequestTimeout + 5*time.Second,
				IdleTimeout:       60 * time.Second,
				MaxHeaderBytes:    1 << 20,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("HTTP server listening",
					logger.String("addr", cfg.HTTP.Addr),
					logger.String("env", cfg.Env),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("HTTP server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}
