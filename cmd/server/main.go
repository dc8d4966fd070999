package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"claimvet/internal/audit"
	"claimvet/internal/clients/claimsdata"
	"claimvet/internal/clients/feescheme"
	"claimvet/internal/clients/httpclient"
	"claimvet/internal/clients/providerdetails"
	"claimvet/internal/domain"
	"claimvet/internal/listener"
	"claimvet/internal/platform/authtoken"
	"claimvet/internal/platform/config"
	"claimvet/internal/platform/httpserver"
	"claimvet/internal/platform/logger"
	platformmetrics "claimvet/internal/platform/metrics"
	"claimvet/internal/platform/middleware"
	platformredis "claimvet/internal/platform/redis"
	"claimvet/internal/schedulecache"
	"claimvet/internal/validation/handler"
	"claimvet/internal/validation/metrics"
	"claimvet/internal/validation/service"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ClaimsDataURL == "" || cfg.FeeSchemeURL == "" || cfg.ProviderDetailsURL == "" {
		log.Error("CLAIMS_DATA_URL, FEE_SCHEME_URL and PROVIDER_DETAILS_URL must be set")
		os.Exit(1)
	}

	var (
		tokens httpclient.TokenSource
		minter *authtoken.Minter
	)
	if cfg.ServiceTokenKey != "" {
		minter = authtoken.New(cfg.ServiceTokenKey, "claimvet")
		tokens = minter
	}
	claimsClient := claimsdata.New(cfg.ClaimsDataURL, tokens)
	feeClient := feescheme.New(cfg.FeeSchemeURL, tokens)
	providerClient := providerdetails.New(cfg.ProviderDetailsURL, tokens)

	var cacheStore schedulecache.Store = schedulecache.NewMemoryStore()
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		cacheStore = schedulecache.NewRedisStore(redisClient.Client)
		defer redisClient.Close()
	}
	cache := schedulecache.New(cacheStore, providerClient,
		schedulecache.WithTTL(cfg.ScheduleCacheTTL),
		schedulecache.WithLogger(log),
		schedulecache.WithMetrics(schedulecache.NewMetrics()),
	)

	var auditStore audit.Store = audit.NewMemoryStore()
	if cfg.PostgresURL != "" {
		db, err := sql.Open("pgx", cfg.PostgresURL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = audit.NewPostgresStore(db)
	}
	publisher := audit.NewPublisher(cfg.AuditBuffer, log)
	go func() {
		if err := audit.NewWorker(auditStore, publisher.Inbox(), log).Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAuditPublisher(publisher),
	}
	if cfg.MinimumPeriod != "" {
		minPeriod, err := domain.ParsePeriod(cfg.MinimumPeriod)
		if err != nil {
			log.Error("invalid MINIMUM_SUBMISSION_PERIOD", "value", cfg.MinimumPeriod, "error", err)
			os.Exit(1)
		}
		opts = append(opts, service.WithMinimumPeriod(minPeriod))
	}
	if cfg.EarliestClaim != "" {
		earliest, err := time.Parse("2006-01-02", cfg.EarliestClaim)
		if err != nil {
			log.Error("invalid EARLIEST_CLAIM_DATE", "value", cfg.EarliestClaim, "error", err)
			os.Exit(1)
		}
		opts = append(opts, service.WithEarliestClaimDate(earliest))
	}
	svc, err := service.New(claimsClient, feeClient, cache, opts...)
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID, chimiddleware.Recoverer)
	router.Use(platformmetrics.NewHTTP().Middleware)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		if minter != nil {
			r.Use(middleware.RequireServiceToken(minter, log))
		}
		handler.New(svc, log).Register(r)
	})

	if len(cfg.KafkaBrokers) > 0 {
		lst, err := listener.New(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup, svc, log, cfg.ListenerWorkers)
		if err != nil {
			log.Error("kafka listener wiring failed", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := lst.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("kafka listener stopped", "error", err)
			}
		}()
	}

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting claimvet", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
