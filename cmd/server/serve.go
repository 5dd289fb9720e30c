package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soaringjerry/Sondage/internal/api"
	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close store", zap.Error(cerr))
		}
	}()

	app, err := api.NewApp(ctx, api.Deps{
		Store:    store,
		Admins:   cfg.Admins,
		Seed:     cfg.Seed,
		Tokens:   middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Location: cfg.Location,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	app.Register(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Sondage API",
			"msg":        utils.T("health.ok"),
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})
	mountFrontend(mux)

	handler := middleware.Chain(app.Handler(mux),
		middleware.RequestLogger(logger),
		middleware.NoStore,
		middleware.SecureHeaders,
		middleware.CORS,
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Sondage server listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// mountFrontend serves the static build when SONDAGE_STATIC_DIR is set, or
// proxies / to a dev server when SONDAGE_DEV_FRONTEND_URL is.
func mountFrontend(mux *http.ServeMux) {
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
		return
	}
	if cfg.DevFrontendURL == "" {
		return
	}
	u, err := url.Parse(cfg.DevFrontendURL)
	if err != nil {
		logger.Warn("invalid SONDAGE_DEV_FRONTEND_URL", zap.String("url", cfg.DevFrontendURL), zap.Error(err))
		return
	}
	rp := httputil.NewSingleHostReverseProxy(u)
	// no-store must survive the proxied response
	rp.ModifyResponse = func(res *http.Response) error {
		res.Header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		res.Header.Set("Pragma", "no-cache")
		res.Header.Set("Expires", "0")
		return nil
	}
	mux.Handle("/", rp)
}
