package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lifelink/internal/events"
	"lifelink/internal/history"
	jwttoken "lifelink/internal/jwt_token"
	"lifelink/internal/matching"
	matchinghandler "lifelink/internal/matching/handler"
	"lifelink/internal/notification"
	notificationhandler "lifelink/internal/notification/handler"
	"lifelink/internal/platform/config"
	"lifelink/internal/platform/httpserver"
	"lifelink/internal/platform/logger"
	"lifelink/internal/platform/metrics"
	"lifelink/internal/platform/middleware"
	redisclient "lifelink/internal/platform/redis"
	"lifelink/internal/request"
	httptransport "lifelink/internal/transport/http"
	"lifelink/internal/user"
)

// main wires dependencies and keeps the server lifecycle small. Every
// optional backend (redis inbox, postgres history, kafka events, JWT auth)
// degrades to an in-memory or no-op variant when unconfigured, so the
// engine always starts.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()
	ctx := context.Background()

	var inboxStore notification.Store = notification.NewInMemory()
	redis, err := redisclient.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redis != nil {
		defer redis.Close()
		inboxStore = notification.NewRedisStore(redis.Client)
		log.Info("notification inbox backed by redis")
	}

	var historyStore history.Store = history.NewInMemory()
	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := history.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("postgres schema setup failed", "error", err)
			os.Exit(1)
		}
		historyStore = pg
		log.Info("donor history backed by postgres")
	}

	var sink events.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		sink = kafka
		log.Info("engine events streaming to kafka", "topic", cfg.Kafka.Topic)
	}

	var (
		jwtValidator middleware.JWTValidator
		tokenIssuer  matchinghandler.TokenIssuer
	)
	if cfg.JWTSigningKey != "" {
		jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "lifelink")
		jwtValidator = jwtService
		tokenIssuer = jwtService
	}

	service := matching.NewService(
		user.NewInMemory(),
		request.NewInMemory(),
		historyStore,
		notification.NewEmitter(inboxStore, log, m),
		events.NewPublisher(sink, log),
		m,
		log,
	)

	router := httptransport.NewRouter(
		matchinghandler.New(service, log, jwtValidator, tokenIssuer),
		notificationhandler.New(inboxStore, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("lifelink engine listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("lifelink engine stopped")
}
