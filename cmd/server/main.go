package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"contactgate/internal/audit"
	auditmemory "contactgate/internal/audit/store/memory"
	auditpostgres "contactgate/internal/audit/store/postgres"
	"contactgate/internal/catalog"
	"contactgate/internal/dnc"
	"contactgate/internal/engine"
	"contactgate/internal/facts"
	factstore "contactgate/internal/facts/store"
	"contactgate/internal/gate"
	gatehandler "contactgate/internal/gate/handler"
	gatemetrics "contactgate/internal/gate/metrics"
	"contactgate/internal/history"
	"contactgate/internal/jwttoken"
	"contactgate/internal/obligation"
	"contactgate/internal/obligation/sink"
	"contactgate/internal/platform/config"
	"contactgate/internal/platform/httpserver"
	"contactgate/internal/platform/logger"
	"contactgate/internal/platform/postgres"
	platformredis "contactgate/internal/platform/redis"
	httptransport "contactgate/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// A misconfigured rule catalog is fatal here, before any traffic is served.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ruleCatalog, err := catalog.New(cfg.Policy)
	if err != nil {
		log.Error("rule catalog rejected", "error", err)
		os.Exit(1)
	}
	eng := engine.New(ruleCatalog)

	// Audit store: Postgres in production, memory for local development.
	var auditStore audit.Store
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
	} else {
		log.Warn("POSTGRES_URL not set, audit records are in-memory only")
		auditStore = auditmemory.New()
	}
	recorder := audit.NewRecorder(auditStore,
		audit.WithLogger(log),
		audit.WithTimeout(cfg.AuditWriteTimeout),
	)

	// Account snapshots: the account subsystem's replica, read-only.
	var accountStore facts.AccountStore
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.PostgresURL)
		if err != nil {
			log.Error("pgx pool unavailable", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		accountStore = factstore.NewPostgresAccountStore(pool)
	} else {
		accountStore = factstore.NewInMemoryAccountStore()
	}

	// Contact history: Redis shares recent attempt counts across instances.
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	var contactHistory facts.ContactHistory
	if redisClient != nil {
		defer redisClient.Close()
		contactHistory = history.NewRedisStore(redisClient.Client)
	} else {
		log.Warn("REDIS_URL not set, contact history is in-memory only")
		contactHistory = history.NewInMemoryStore()
	}

	// DNC registry, Redis-cached when possible.
	var dncRegistry facts.DNCRegistry
	if cfg.DNCRegistryURL != "" {
		dncRegistry = dnc.NewClient(cfg.DNCRegistryURL, 200*time.Millisecond)
		if redisClient != nil {
			dncRegistry = dnc.NewCachedRegistry(dncRegistry, redisClient.Client, cfg.DNCCacheTTL, log)
		}
	} else {
		log.Warn("DNC_REGISTRY_URL not set, using empty static registry")
		dncRegistry = dnc.NewStaticRegistry()
	}

	resolver := facts.NewResolver(accountStore, contactHistory, dncRegistry,
		facts.WithLogger(log),
		facts.WithTimeout(cfg.FactResolveTimeout),
	)

	// Obligation sink: Kafka hands follow-ups to the external scheduler.
	var obligationSink obligation.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := sink.NewKafka(cfg.KafkaBrokers, cfg.ObligationTopic)
		if err != nil {
			log.Error("kafka sink unavailable", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		obligationSink = kafkaSink
	} else {
		log.Warn("KAFKA_BROKERS not set, obligations are collected in-memory only")
		obligationSink = sink.NewMemory()
	}

	service := gate.NewService(
		resolver,
		eng,
		recorder,
		obligation.NewScheduler(cfg.Policy),
		obligationSink,
		contactHistory,
		gate.WithLogger(log),
		gate.WithMetrics(gatemetrics.New()),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	handler := gatehandler.New(service, auditStore, log)
	router := httptransport.NewRouter(handler, jwttoken.NewActorValidator(jwtService))

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting contactgate", "addr", cfg.Addr, "rules", ruleCatalog.Len())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
