package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/auth"
	"hrrecords/internal/domain/bonus"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/leave"
	"hrrecords/internal/domain/payroll"
	"hrrecords/internal/domain/position"
	"hrrecords/internal/domain/salary"
	"hrrecords/internal/platform/config"
	"hrrecords/internal/platform/db"
	"hrrecords/internal/platform/jobs"
	"hrrecords/internal/platform/logging"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/metrics"
	"hrrecords/internal/transport/http/api"
	audithandler "hrrecords/internal/transport/http/handlers/audit"
	bonushandler "hrrecords/internal/transport/http/handlers/bonus"
	employeehandler "hrrecords/internal/transport/http/handlers/employee"
	leavehandler "hrrecords/internal/transport/http/handlers/leave"
	payrollhandler "hrrecords/internal/transport/http/handlers/payroll"
	positionhandler "hrrecords/internal/transport/http/handlers/position"
	salaryhandler "hrrecords/internal/transport/http/handlers/salary"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

const APIPrefix = "/api/v0"

type App struct {
	Config  config.Config
	Logger  *logrus.Logger
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// Services are the resource services behind the API routes.
type Services struct {
	Employees employeehandler.Service
	Positions positionhandler.Service
	Salaries  salaryhandler.Service
	Payrolls  payrollhandler.Service
	Bonuses   bonushandler.Service
	Leaves    leavehandler.Service
}

// RouterDeps is everything NewRouter needs. AuditTrail, Idempotency, Metrics
// and Ready are optional.
type RouterDeps struct {
	Config      config.Config
	Logger      logrus.FieldLogger
	Kit         *shared.Kit
	Services    Services
	AuditTrail  audithandler.Service
	Verifier    middleware.TokenVerifier
	Idempotency middleware.IdempotencyKeeper
	Metrics     *metrics.Collector
	Ready       func(ctx context.Context) error
}

// New connects to the database, applies migrations and seeds, and builds the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "migrate")
		}
	}
	seeded, err := db.Seed(ctx, pool, cfg)
	if err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "seed")
	}
	if seeded > 0 {
		logger.WithField("positions", seeded).Info("seeded positions")
	}

	catalog, err := messages.New(cfg.MessagesLang)
	if err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "load messages")
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	recorder := audit.New(pool)
	kit := &shared.Kit{
		Messages:        catalog,
		Validate:        shared.NewValidate(),
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		Audit:           recorder,
	}
	if collector != nil {
		kit.Metrics = collector
	}

	router := NewRouter(RouterDeps{
		Config:      cfg,
		Logger:      logger,
		Kit:         kit,
		Services:    newServices(pool, catalog),
		AuditTrail:  recorder,
		Verifier:    auth.NewVerifier(cfg.JWTSecret, cfg.JWTResourceID, cfg.JWTPrincipalClaim),
		Idempotency: middleware.NewIdempotencyStore(pool),
		Metrics:     collector,
		Ready: func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      pool,
		Metrics: collector,
		Router:  router,
	}, nil
}

func newServices(pool *pgxpool.Pool, catalog messages.Resolver) Services {
	tx := db.NewTxRunner(pool)
	employees := employee.NewService(employee.NewStore(pool), tx, catalog)
	salaries := salary.NewService(salary.NewStore(pool), employees, tx, catalog)
	return Services{
		Employees: employees,
		Positions: position.NewService(position.NewStore(pool), employees, tx, catalog),
		Salaries:  salaries,
		Payrolls:  payroll.NewService(payroll.NewStore(pool), salaries, tx, catalog),
		Bonuses:   bonus.NewService(bonus.NewStore(pool), employees, tx, catalog),
		Leaves:    leave.NewService(leave.NewStore(pool), employees, tx, catalog),
	}
}

func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Auth(deps.Verifier))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, r, http.StatusNotFound, "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if deps.Metrics != nil {
		router.Method(http.MethodGet, cfg.MetricsPath, deps.Metrics.Handler())
	}

	router.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.ReadWriteGate(auth.ReadRoles, auth.WriteRoles))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		if deps.Idempotency != nil {
			r.Use(middleware.Idempotency(deps.Idempotency))
		}

		svc := deps.Services
		employeehandler.NewHandler(svc.Employees, deps.Kit).RegisterRoutes(r)
		positionhandler.NewHandler(svc.Positions, deps.Kit).RegisterRoutes(r)
		salaryhandler.NewHandler(svc.Salaries, deps.Kit).RegisterRoutes(r)
		payrollhandler.NewHandler(svc.Payrolls, deps.Kit).RegisterRoutes(r)
		bonushandler.NewHandler(svc.Bonuses, deps.Kit).RegisterRoutes(r)
		leavehandler.NewHandler(svc.Leaves, deps.Kit).RegisterRoutes(r)
		if deps.AuditTrail != nil {
			audithandler.NewHandler(deps.AuditTrail, deps.Kit).RegisterRoutes(r)
		}
	})

	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app, err := New(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs.New(app.DB, cfg, app.Logger).Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		app.Logger.WithField("addr", cfg.Addr).Info("hrrecords server listening")
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

	app.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
