package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/uday-rana/employees/internal/config"
	"github.com/uday-rana/employees/internal/db"
	"github.com/uday-rana/employees/internal/health"
	"github.com/uday-rana/employees/internal/logger"
	"github.com/uday-rana/employees/internal/messaging"
	"github.com/uday-rana/employees/internal/metrics"
	"github.com/uday-rana/employees/internal/middleware"
	"github.com/uday-rana/employees/internal/person"
	"github.com/uday-rana/employees/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *bun.DB
	producer *messaging.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	nameMode, err := person.ParseNameMode(cfg.Validation.NameMode)
	if err != nil {
		log.Fatalf("invalid validation config: %v", err)
	}

	appMetrics, err := metrics.New(ServiceName, slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*person.Person)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	views, err := view.New()
	if err != nil {
		log.Fatal("failed to load views:", err)
	}

	app := &App{
		config:   cfg,
		router:   chi.NewRouter(),
		logger:   slogLogger,
		database: database,
	}

	app.router.Use(middleware.RequestLogger(slogLogger, appMetrics))

	// Health endpoints
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// NATS producer setup (optional - person events)
	var publisher person.Publisher
	if cfg.NATS.URL != "" {
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			slogLogger.Info("NATS producer initialized successfully")
			app.producer = producer
			publisher = producer
		}
	}

	// Person endpoints
	personRepo := person.NewRepository(database, appMetrics)
	personService := person.NewService(personRepo, nameMode, publisher)
	personHandler := person.NewHandler(personService, views, slogLogger)
	personHandler.RegisterRoutes(app.router)
	app.router.NotFound(personHandler.NotFound)

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close NATS producer", "error", err)
		}
	}
	defer db.Close(a.database)

	return a.server.Shutdown(ctx)
}
