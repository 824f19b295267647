package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/tazamart/backend/internal/application/admin"
	"github.com/tazamart/backend/internal/application/checkout"
	"github.com/tazamart/backend/internal/application/store"
	syncapp "github.com/tazamart/backend/internal/application/sync"
	"github.com/tazamart/backend/internal/infrastructure/config"
	"github.com/tazamart/backend/internal/infrastructure/localstore"
	"github.com/tazamart/backend/internal/infrastructure/logger"
	"github.com/tazamart/backend/internal/infrastructure/sheets"
	"github.com/tazamart/backend/internal/interfaces/http/handler"
	"github.com/tazamart/backend/internal/interfaces/http/middleware"
	"github.com/tazamart/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TazaMart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Local cache
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	cache, err := localstore.Open(cfg.Cache.Path, gormLog, log)
	if err != nil {
		log.Fatal("Failed to open local cache", zap.Error(err))
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("Error closing local cache", zap.Error(err))
		}
	}()
	log.Info("Local cache opened", zap.String("path", cfg.Cache.Path))

	// Hydrate the state store from the cache. Missing or unreadable
	// slices fall back to built-in defaults, so startup never fails here.
	language, theme := cache.LoadPreferences()
	initial := store.NewState(
		cache.LoadProducts(),
		cache.LoadOrders(),
		cache.LoadRemoteOrders(),
		cache.LoadFavorites(),
		cache.LoadProfile(),
		language,
		theme,
	)
	st := store.New(initial, cache, log)
	log.Info("State hydrated from cache",
		zap.Int("products", len(st.State().Products)),
		zap.Int("orders", len(st.State().Orders())),
	)

	// Remote sync is optional: without an endpoint the app runs on local
	// data only.
	var remote syncapp.Remote
	if cfg.Sheets.Endpoint != "" {
		client, err := sheets.NewClient(&sheets.Config{
			Endpoint: cfg.Sheets.Endpoint,
			Timeout:  cfg.Sheets.Timeout,
		}, log)
		if err != nil {
			log.Fatal("Failed to create sheets client", zap.Error(err))
		}
		remote = client
	}
	syncer := syncapp.New(st, remote, syncapp.Config{
		SettleDelay:      cfg.Sheets.SettleDelay,
		ReconcileRetries: cfg.Sheets.ReconcileRetries,
		RetryDelay:       cfg.Sheets.RetryDelay,
		FetchTimeout:     cfg.Sheets.Timeout,
	}, log)

	if syncer.Enabled() {
		// Initial hydrating fetch runs in the background; the storefront
		// serves cached data under a loading flag until it lands.
		_ = st.Dispatch(store.SetLoading{Loading: true})
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Sheets.Timeout)
			defer cancel()
			if err := syncer.Refresh(ctx); err != nil {
				log.Warn("Initial remote fetch failed, serving cached data", zap.Error(err))
			}
		}()
		log.Info("Remote sync enabled", zap.String("endpoint", cfg.Sheets.Endpoint))
	} else {
		log.Info("Remote sync disabled, running on local data only")
	}

	// Application services
	checkoutSvc := checkout.New(st, syncer, log)
	adminSvc := adminapp.New(st, syncer, adminapp.Config{
		Password:   cfg.Admin.Password,
		SessionTTL: cfg.Admin.SessionTTL,
	}, log)

	middleware.SetupValidator()

	engine := router.Setup(cfg, log, router.Handlers{
		Catalog:  handler.NewCatalogHandler(st),
		Cart:     handler.NewCartHandler(st),
		Checkout: handler.NewCheckoutHandler(st, checkoutSvc),
		Profile:  handler.NewProfileHandler(st),
		Admin:    handler.NewAdminHandler(adminSvc, syncer),
		System:   handler.NewSystemHandler(version, syncer),
	}, adminSvc)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight write reconciliations finish before exit
	syncer.Wait()

	log.Info("Server exited gracefully")
}
