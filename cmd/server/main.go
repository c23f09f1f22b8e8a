package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Omkar76/nscc-backend/internal/account"
	accounthandler "github.com/Omkar76/nscc-backend/internal/account/handler"
	"github.com/Omkar76/nscc-backend/internal/catalog"
	"github.com/Omkar76/nscc-backend/internal/event"
	eventhandler "github.com/Omkar76/nscc-backend/internal/event/handler"
	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/internal/jwtauth"
	"github.com/Omkar76/nscc-backend/internal/platform/audit"
	"github.com/Omkar76/nscc-backend/internal/platform/config"
	"github.com/Omkar76/nscc-backend/internal/platform/httpserver"
	"github.com/Omkar76/nscc-backend/internal/platform/logger"
	"github.com/Omkar76/nscc-backend/internal/platform/metrics"
	"github.com/Omkar76/nscc-backend/internal/platform/middleware"
	platformredis "github.com/Omkar76/nscc-backend/internal/platform/redis"
	registrationhandler "github.com/Omkar76/nscc-backend/internal/registration/handler"
	"github.com/Omkar76/nscc-backend/internal/registration/service"
	regstore "github.com/Omkar76/nscc-backend/internal/registration/store"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration failed", "error", err.Error())
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Stores: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		eventStore        event.Store
		profileStore      account.Store
		registrationStore regstore.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("database open failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("database ping failed", "error", err.Error())
			os.Exit(1)
		}
		eventStore = event.NewPostgres(db)
		profileStore = account.NewPostgres(db)
		registrationStore = regstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		eventStore = event.NewInMemoryStore()
		profileStore = account.NewInMemoryStore()
		registrationStore = regstore.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connect failed", "error", err.Error())
			os.Exit(1)
		}
		defer client.Close()
		eventStore = event.NewCache(eventStore, client, cfg.EventCacheTTL, log)
		log.Info("event cache enabled", "ttl", cfg.EventCacheTTL.String())
	}

	auditPub, closeAudit, err := buildAuditPublisher(cfg, log)
	if err != nil {
		log.Error("audit sink setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer closeAudit()

	cat := catalog.Builtin()
	validator := service.NewValidator(cat, service.ValidatorOptions{
		EnforceConstraints: cfg.EnforceFieldConstraints,
		ReportAllMissing:   cfg.ReportAllMissing,
	})

	svc, err := service.New(
		cat,
		validator,
		eventStore,
		profileStore,
		registrationStore,
		identity.NewInMemoryProvider(),
		log,
		m,
		auditPub,
	)
	if err != nil {
		log.Error("service setup failed", "error", err.Error())
		os.Exit(1)
	}

	jwtService := jwtauth.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(m))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(jwtService, log))
		registrationhandler.New(svc, log).Register(r)
		accounthandler.New(profileStore, log, auditPub).Register(r)
		eventhandler.New(eventStore, log, auditPub).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}

// buildAuditPublisher selects Kafka when brokers are configured and an
// in-process sink otherwise, so Emit callers never branch.
func buildAuditPublisher(cfg config.Config, log *slog.Logger) (*audit.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewPublisher(log, audit.NewMemorySink()), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("kafka audit sink enabled", "topic", cfg.AuditTopic)
	return audit.NewPublisher(log, sink), sink.Close, nil
}
