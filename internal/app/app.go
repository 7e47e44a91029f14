package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"spectrumloader/internal/config"
	"spectrumloader/internal/errors"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/internal/loader"
	customMiddleware "spectrumloader/internal/middleware"
	"spectrumloader/internal/services"
	handlers "spectrumloader/internal/transport/http"
	"spectrumloader/internal/validation"
	"spectrumloader/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Metrics       *infrastructure.Metrics
	Loader        *loader.Loader
	DumpService   *services.DumpService
	HealthService *services.HealthService

	shutdownTracing infrastructure.ShutdownFunc
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	shutdownTracing, err := infrastructure.InitTracing(cfg.Tracing, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		Metrics:         infrastructure.NewMetrics(),
		shutdownTracing: shutdownTracing,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Loader = loader.New(
		loader.WithLogger(a.Logger),
		loader.WithVerbose(a.Config.Loader.Verbose),
		loader.WithExtension(a.Config.Loader.Extension),
		loader.WithRecorder(a.Metrics),
	)
	a.DumpService = services.NewDumpService(a.Config.GetDumpDir(), a.Loader, a.Logger)
	a.HealthService = services.NewHealthService(a.Config.GetDumpDir(), a.Logger)
}

// setupRouter builds the middleware chain and routes.
// Order: RequestID → RealIP → Tracing → Metrics → Logger → Recoverer → the rest
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Tracing)
	r.Use(customMiddleware.Metrics(a.Metrics))
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{Logger: a.Logger}))
	r.Use(customMiddleware.StripSlashes)

	errorHandler := errors.NewErrorHandler(a.Logger, a.Config.Server.IncludeStack)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		if a.Config.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.RateLimit.RPS,
				a.Config.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))

			healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)

			dumpHandler := handlers.NewDumpHandler(a.DumpService, a.Logger, errorHandler)
			r.Mount("/dumps", dumpHandler.Routes())
		})
	})

	// Prometheus scrapes bypass rate limiting
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server in the background. A failing server cancels ctx.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	// the catalog reports an unreadable directory per request, so serve anyway
	validator := validation.NewFileValidator(a.Logger)
	if _, err := validator.ValidateDumpDirectory(a.Config.GetDumpDir(), a.Loader.Extension()); err != nil {
		a.Logger.WarnContext(ctx, "Dump directory is not accessible",
			slog.String("dump_dir", a.Config.GetDumpDir()),
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("dump_dir", a.Config.GetDumpDir()),
		slog.String("extension", a.Loader.Extension()),
		slog.Bool("verbose", a.Loader.Verbose()))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down tracing", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(ctx)
}
