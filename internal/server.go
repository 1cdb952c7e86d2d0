package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dvranic/runquest/internal/auth"
	"github.com/dvranic/runquest/internal/boss"
	"github.com/dvranic/runquest/internal/coach"
	"github.com/dvranic/runquest/internal/config"
	"github.com/dvranic/runquest/internal/db"
	"github.com/dvranic/runquest/internal/enemies"
	"github.com/dvranic/runquest/internal/middleware"
	"github.com/dvranic/runquest/internal/misc"
	"github.com/dvranic/runquest/internal/oracle"
	"github.com/dvranic/runquest/internal/telemetry/metrics"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
)

const statsCacheSize = 10 * 1024 * 1024 // 10 MB

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appRequestsSecret string // used by the companion mobile app
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	oracleClient *oracle.Client

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	OracleAPIKey            string
	AppRequestsSecret       string
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "runquest_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("runquest", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "runquest-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Minute,
	}

	s := &Server{
		config:            params.Config,
		dbPool:            dbPool,
		appRequestsSecret: params.AppRequestsSecret,
		versionInfo:       params.VersionInfo,

		oracleClient: oracle.NewClient(
			params.Config.OracleAPIURL,
			params.OracleAPIKey,
			params.Config.OracleModel,
			tracedHttpClient,
		),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	trainingRepo := training.NewRepo(s.dbPool)
	trainingAnalyzer := training.NewAnalyzer(trainingRepo)
	trainingHandler := training.NewHandler(
		trainingRepo,
		trainingAnalyzer,
		freecache.NewCache(statsCacheSize),
		s.metricsManager,
	)
	r.HandleFunc("/training", trainingHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-training")
	r.HandleFunc("/training/stats", trainingHandler.HandleStats).Methods("GET", "OPTIONS").Name("training-stats")
	r.HandleFunc("/training/list/page/{page}/size/{size}", trainingHandler.HandleList).Methods("GET", "OPTIONS").Name("list-trainings")
	r.HandleFunc("/training/{id}", trainingHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-training")

	enemiesHandler := enemies.NewHandler(
		enemies.NewService(enemies.NewRepo(s.dbPool), trainingAnalyzer),
		s.metricsManager,
	)
	r.HandleFunc("/enemy", enemiesHandler.HandleStatus).Methods("GET", "OPTIONS").Name("enemy-status")
	r.HandleFunc("/enemy/defeat", enemiesHandler.HandleDefeat).Methods("POST", "OPTIONS").Name("enemy-defeat")

	predictor := oracle.NewPredictor(s.oracleClient, s.metricsManager)
	bossHandler := boss.NewHandler(
		boss.NewService(boss.NewRepo(s.dbPool), trainingAnalyzer, predictor),
		s.metricsManager,
	)
	r.HandleFunc("/boss", bossHandler.HandleStatus).Methods("GET", "OPTIONS").Name("boss-status")
	r.HandleFunc("/boss", bossHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-boss")
	r.HandleFunc("/boss/complete", bossHandler.HandleComplete).Methods("PATCH", "OPTIONS").Name("complete-boss")

	coachHandler := coach.NewHandler(
		coach.NewService(coach.NewRepo(s.dbPool), trainingAnalyzer, s.oracleClient),
		s.metricsManager,
	)
	r.HandleFunc("/coach/chat", coachHandler.HandleChat).Methods("POST", "OPTIONS").Name("coach-chat")
	r.HandleFunc("/coach/settings", coachHandler.HandleGetSettings).Methods("GET", "OPTIONS").Name("get-settings")
	r.HandleFunc("/coach/settings", coachHandler.HandleUpdateSettings).Methods("PUT", "OPTIONS").Name("update-settings")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.appRequestsSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
