package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mineral-licensing-api/api/swagger"
	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/handler"
	"github.com/noah-isme/mineral-licensing-api/internal/repository"
	"github.com/noah-isme/mineral-licensing-api/internal/router"
	"github.com/noah-isme/mineral-licensing-api/internal/service"
	"github.com/noah-isme/mineral-licensing-api/pkg/config"
	"github.com/noah-isme/mineral-licensing-api/pkg/database"
	"github.com/noah-isme/mineral-licensing-api/pkg/logger"
	"github.com/noah-isme/mineral-licensing-api/pkg/normalize"
	"github.com/noah-isme/mineral-licensing-api/pkg/storage"
)

// @title Mineral Licensing API
// @version 1.0.0
// @description Mining license portal backend
// @BasePath /
// @schemes http https

type documentStore interface {
	Put(ctx context.Context, in storage.PutObjectInput) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	normalize.SetLogger(logr.Named("normalize"))

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	store, uploadsDir, err := newDocumentStore(ctx, cfg.Storage)
	if err != nil {
		logr.Fatal("failed to init document store", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}

	authn, err := auth.FromConfig(cfg.Auth)
	if err != nil {
		logr.Fatal("failed to init authenticator", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	gateway := repository.NewRecordGateway(db, metrics)
	relay := service.NewFileRelay(store, cfg.Storage, metrics, logr.Named("relay"))
	validate := validator.New()

	engine := router.New(router.Dependencies{
		Config:        cfg,
		Logger:        logr,
		Authenticator: authn,
		Observer:      metrics,
		UploadsDir:    uploadsDir,
	}, router.Handlers{
		System: handler.NewSystemHandler(map[string]handler.Pinger{
			"database": gateway,
			"storage":  store,
		}, logr),
		Metrics:    handler.NewMetricsHandler(metrics.Handler()),
		Contact:    handler.NewContactHandler(service.NewContactService(gateway, validate, logr.Named("contact"))),
		License:    handler.NewLicenseHandler(service.NewLicenseService(gateway, relay, logr.Named("license"))),
		Miner:      handler.NewMinerHandler(service.NewMinerService(gateway, cfg.Royalty.DueDate, logr.Named("miner"))),
		Unlicensed: handler.NewUnlicensedMinerHandler(service.NewUnlicensedMinerService(gateway, relay, logr.Named("unlicensed"))),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.Storage.Driver, "auth", cfg.Auth.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newDocumentStore returns the configured store and, for local storage, the
// directory the router serves uploads from.
func newDocumentStore(ctx context.Context, cfg config.StorageConfig) (documentStore, string, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		store, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := storage.NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}
