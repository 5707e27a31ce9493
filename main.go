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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ticketapi/clock"
	"ticketapi/config"
	"ticketapi/db"
	"ticketapi/middlewares"
	"ticketapi/models"
	"ticketapi/routes"
	"ticketapi/services"
	"ticketapi/utils"
)

func main() {
	cfg := config.Load()

	logger := initLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repos, closeStore, err := openStore(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("could not open store", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer closeStore()

	// Redis（選用）：回應快取 + 登入配額
	var (
		rdb *redis.Client
		inv *utils.CacheInvalidator
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("redis ping error", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		inv = utils.NewCacheInvalidator(rdb)
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	}

	gin.SetMode(cfg.GinMode)
	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(logger), middlewares.Metrics())

	stopLimiters := routes.RegisterRoutes(server, routes.Deps{
		Organizers:       services.NewOrganizerService(repos, cfg.APIToken),
		Events:           services.NewEventService(repos, clock.NewSystem()),
		Tickets:          services.NewTicketService(repos),
		Logger:           logger,
		APIToken:         cfg.APIToken,
		Redis:            rdb,
		Invalidator:      inv,
		CacheTTL:         cfg.CacheTTL,
		LoginQuota:       cfg.LoginQuota,
		LoginQuotaWindow: cfg.LoginQuotaWindow,
		Ping:             repos.Ping,
	})
	defer stopLimiters()

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(server)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// openStore 依 STORE 選 Postgres / Mongo / memory
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (models.Repositories, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		sqldb, err := db.OpenPostgres(ctx, cfg.PGDSN)
		if err != nil {
			return models.Repositories{}, nil, err
		}
		logger.Info("connected to postgres")
		return models.Repositories{
			Organizers: models.NewSQLOrganizerRepository(sqldb),
			Events:     models.NewSQLEventRepository(sqldb),
			Tickets:    models.NewSQLTicketRepository(sqldb),
			Ping:       sqldb.PingContext,
		}, func() { _ = sqldb.Close() }, nil

	case config.StoreMongo:
		mg, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return models.Repositories{}, nil, err
		}
		database := mg.Database(cfg.MongoDB)
		if err := db.EnsureMongoIndexes(ctx, database); err != nil {
			_ = mg.Disconnect(context.Background())
			return models.Repositories{}, nil, err
		}
		logger.Info("connected to mongo", zap.String("database", cfg.MongoDB))
		return models.Repositories{
			Organizers: models.NewMongoOrganizerRepository(database.Collection("organizers")),
			Events:     models.NewMongoEventRepository(database.Collection("events")),
			Tickets:    models.NewMongoTicketRepository(database.Collection("tickets")),
			Ping:       func(ctx context.Context) error { return mg.Ping(ctx, nil) },
		}, func() { _ = mg.Disconnect(context.Background()) }, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return models.NewMemoryStore().Repositories(), func() {}, nil
	}
	return models.Repositories{}, nil, fmt.Errorf("unknown STORE %q", cfg.Store)
}

func initLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
