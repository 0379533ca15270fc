package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dkovacev/liftlog/internal/auth"
	"github.com/dkovacev/liftlog/internal/bodycomp"
	"github.com/dkovacev/liftlog/internal/config"
	"github.com/dkovacev/liftlog/internal/db"
	"github.com/dkovacev/liftlog/internal/exercises"
	"github.com/dkovacev/liftlog/internal/middleware"
	"github.com/dkovacev/liftlog/internal/programs"
	"github.com/dkovacev/liftlog/internal/schema"
	"github.com/dkovacev/liftlog/internal/telemetry/metrics"
	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/internal/users"
	"github.com/dkovacev/liftlog/internal/workout"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// the operator account, resolved (or provisioned) at startup;
	// all workout and body composition rows are scoped to it
	operatorID int

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPassword           string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewPool(ctx, db.NewPoolParams{
		DBHost:            params.Config.PostgresHost,
		DBPort:            params.Config.PostgresPort,
		DBName:            params.Config.PostgresDBName,
		DBUser:            params.Config.PostgresUser,
		TracingEnabled:    params.HoneycombTracingEnabled,
		MaxConns:          params.Config.DBMaxConns,
		MinConns:          params.Config.DBMinConns,
		MaxConnLifetime:   time.Duration(params.Config.DBMaxConnLifetimeMinutes) * time.Minute,
		MaxConnIdleTime:   time.Duration(params.Config.DBMaxConnIdleMinutes) * time.Minute,
		HealthCheckPeriod: time.Duration(params.Config.DBHealthCheckSeconds) * time.Second,
		StatementTimeout:  time.Duration(params.Config.DBStatementTimeoutMillis) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	// bring the schema up to the expected model before anything touches it
	reconciler := schema.NewReconciler(schema.NewPostgresDB(dbPool), schema.PostgresDialect{})
	report, err := reconciler.Reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile schema: %w", err)
	}
	if report.Changed() {
		log.Infof("schema reconciled:\n%s", report)
	} else {
		log.Debugln(report.String())
	}

	operator, err := resolveOperator(ctx, users.NewRepo(dbPool), params.AdminUsername, params.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("resolve operator account: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftlog", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

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
		Username:     operator.Username,
		PasswordHash: operator.PasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		operatorID:  operator.ID,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// resolveOperator finds the operator account, creating it on first run.
// When the account already exists, the stored password hash wins over
// whatever was provided via env.
func resolveOperator(
	ctx context.Context,
	usersRepo *users.Repo,
	username, password string,
) (*users.User, error) {
	if username == "" {
		return nil, errors.New("operator username empty")
	}

	operator, err := usersRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return operator, nil
	case errors.Is(err, users.ErrUserNotFound):
		// fall through to provisioning
	default:
		return nil, err
	}

	if password == "" {
		return nil, fmt.Errorf("operator %s missing and no password provided", username)
	}
	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash operator password: %w", err)
	}

	operator, err = usersRepo.Create(ctx, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("create operator: %w", err)
	}
	log.Infof("operator account %s provisioned", username)
	return operator, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService, s.versionInfo)
	authHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	exercisesRepo := exercises.NewRepo(s.dbPool)
	exercisesHandler := exercises.NewHandler(exercisesRepo)
	exercisesHandler.SetupRoutes(r)

	recorder := workout.NewRecorder(workout.NewRepo(s.dbPool), exercisesRepo)
	workoutHandler := workout.NewHandler(recorder, s.operatorID, s.metricsManager)
	workoutHandler.SetupRoutes(r)

	bodycompHandler := bodycomp.NewHandler(bodycomp.NewRepo(s.dbPool), s.operatorID)
	bodycompHandler.SetupRoutes(r)

	programsHandler := programs.NewHandler(programs.NewRepo(s.dbPool), s.operatorID)
	programsHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
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

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
