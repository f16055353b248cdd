package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo/config"
	"github.com/oksasatya/go-ddd-todo/internal/container"
	pginfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-todo/internal/router"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
	"github.com/oksasatya/go-ddd-todo/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	secret := cfg.SigningSecret()
	if secret == "" {
		logger.Fatal("JWT_SECRET is required in production")
	}

	ctx := context.Background()

	db, closeDB := openStore(ctx, cfg, logger)
	defer closeDB()

	// Redis (optional; rate limiting is off without it)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, rate limits fail open")
		}
		cancel()
	}

	jwtManager := helpers.NewJWTManager(secret, cfg.TokenTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetDB(db)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)

	r := router.NewEngine(cfg, logger)
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// openStore connects to the configured store and applies migrations. Any
// failure here is fatal.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*sql.DB, func()) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := pginfra.Migrate(cfg.PostgresDSN(), logger); err != nil {
			pool.Close()
			logger.Fatalf("migration failed: %v", err)
		}
		db := pginfra.OpenDB(pool)
		return db, func() { _ = db.Close(); pool.Close() }
	case config.DriverSQLite:
		db, err := sqliteinfra.Open(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatalf("failed to open sqlite %s: %v", cfg.SQLitePath, err)
		}
		if err := sqliteinfra.Migrate(db, logger); err != nil {
			_ = db.Close()
			logger.Fatalf("migration failed: %v", err)
		}
		return db, func() { _ = db.Close() }
	default:
		logger.Fatalf("unknown DB_DRIVER %q (want %s or %s)", cfg.DBDriver, config.DriverSQLite, config.DriverPostgres)
		return nil, nil
	}
}
