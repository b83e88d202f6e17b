package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/ironai/internal/config"
	"github.com/2beens/ironai/internal/db"
	"github.com/2beens/ironai/internal/generator"
	"github.com/2beens/ironai/internal/mcptools"
	"github.com/2beens/ironai/internal/middleware"
	"github.com/2beens/ironai/internal/misc"
	"github.com/2beens/ironai/internal/progression"
	"github.com/2beens/ironai/internal/session"
	"github.com/2beens/ironai/internal/store"
	"github.com/2beens/ironai/internal/telemetry/metrics"
	"github.com/2beens/ironai/internal/telemetry/tracing"
	"github.com/2beens/ironai/internal/workouts"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juju/clock"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	store       store.Store

	sessions        *session.Manager
	workoutsService *workouts.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	GeminiApiKey            string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
	}

	// redis also backs the rate limiter, so it is used whenever configured
	if cfg.RedisHost != "" {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "ironai-backend", s.redisClient)
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	var collectors []prometheus.Collector
	switch cfg.StoreBackend {
	case store.BackendRedis:
		s.store = store.NewRedisStore(s.redisClient, cfg.RedisMaxTxRetries)
	case store.BackendPostgres:
		dbParams := db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		}
		if err := store.MigratePostgres(dbParams.ConnString()); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		s.dbPool, err = db.NewDBPool(ctx, dbParams)
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
		s.store = store.NewPsqlStore(s.dbPool)
	case store.BackendSqlite:
		sqliteStore, err := store.NewSqliteStore(cfg.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		s.store = sqliteStore
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
	log.Infof("using [%s] store backend", cfg.StoreBackend)

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("ironai", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.GeneratorTimeout(),
	}
	generatorApi := generator.NewApi(generator.ApiParams{
		BaseURL:        cfg.GeminiBaseURL,
		Model:          cfg.GeminiModel,
		ApiKey:         params.GeminiApiKey,
		HttpClient:     tracedHttpClient,
		TipCacheExpire: cfg.TipCacheExpire(),
	})

	s.sessions = session.NewManager(session.ManagerParams{
		Clock:          clock.WallClock,
		IdleTimeout:    cfg.SessionIdleTimeout(),
		ActiveSessions: s.metricsManager.GaugeActiveSessions,
	})

	sameDayPolicy, err := progression.ParseSameDayPolicy(cfg.SameDayStreakPolicy)
	if err != nil {
		return nil, err
	}
	location := cfg.Location()

	s.workoutsService = workouts.NewService(workouts.ServiceParams{
		Store:     s.store,
		Generator: generatorApi,
		Sessions:  s.sessions,
		Updater:   progression.NewUpdater(sameDayPolicy, location),
		Metrics:   s.metricsManager,
		Location:  location,
		Clock:     clock.WallClock,
	})

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("ironai-router"))

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	} else {
		log.Warnln("no redis configured, plan generation is not rate limited")
	}
	workouts.NewHandler(s.workoutsService).SetupRoutes(
		r,
		rateLimiter,
		s.metricsManager,
		s.config.GenerateRateLimitPerMin,
	)

	// read-only training context for MCP clients
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcptools.NewServer(s.store, s.versionInfo))
	r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")

	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: s.routerSetup(),
		Addr:    ipAndPort,
		// generation requests wait on the external model
		WriteTimeout: s.config.GeneratorTimeout() + 30*time.Second,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	// unfinished sessions are abandoned, nothing is persisted for them
	s.sessions.Stop()
	log.Debugln("session manager stopped")

	if err := s.store.Close(); err != nil {
		log.Errorf("failed to close store: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
