//go:generate swag init -g cmd/api/main.go -o docs --parseInternal

// @title       Pet Clinic API
// @version     1.0
// @description Backend de la clínica veterinaria.
// @BasePath    /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer <token>
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-clinic/internal/adapters/storage/postgres"
	"pet-clinic/internal/config"
	"pet-clinic/internal/platform/logger"
	"pet-clinic/internal/platform/metrics"
	"pet-clinic/internal/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	envFile := flag.String("env", os.Getenv("ENV_FILE"), "archivo .env opcional")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.NewFromEnv().Error("config", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if cfg.DBDSN != "" {
		sqlDB, err := pg.Open(cfg.DBDSN, cfg.DBMaxOpenConns)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if cfg.DBMigrate {
			if err := pg.Migrate(ctx, sqlDB); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
		}

		db, err = pg.NewGorm(sqlDB, log, cfg.DBSlowQuery)
		if err != nil {
			return err
		}
	}

	var rdb redis.UniversalClient
	if cfg.RedisAddr != "" {
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.RedisAddr},
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
	}

	var m *metrics.HTTP
	if cfg.MetricsEnabled {
		m = metrics.NewHTTP("pet_clinic")
	}

	h := router.NewRouter(router.Options{
		Logger:         log,
		DB:             db,
		Redis:          rdb,
		RedisKeyPrefix: cfg.RedisKeyPrefix,
		JWTSecret:      []byte(cfg.JWTSecret),
		JWTIssuer:      cfg.JWTIssuer,
		TokenTTL:       cfg.JWTExpiresIn,
		BcryptCost:     cfg.BcryptCost,
		AuthRequired:   cfg.AuthRequired,
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.AppEnv, "postgres": db != nil, "redis": rdb != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
