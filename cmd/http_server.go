package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/access-console/api"
	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/core/events"
	"github.com/frahmantamala/access-console/internal/roster"
	rosterSqlite "github.com/frahmantamala/access-console/internal/roster/sqlite"
	"github.com/frahmantamala/access-console/internal/session"
	"github.com/frahmantamala/access-console/internal/suggestion"
	"github.com/frahmantamala/access-console/internal/transport"
	"github.com/frahmantamala/access-console/internal/transport/rest"
	"github.com/frahmantamala/access-console/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the console API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	Logger         *slog.Logger
	Catalog        *catalog.Catalog
	Store          roster.Store
	RosterService  *roster.Service
	Sessions       *session.Registry
	SessionService *session.Service
	EventBus       *events.EventBus
	OpenAPISpec    []byte
	Router         *chi.Mux
	closers        []func() error
}

func (d *Dependencies) Close() {
	d.EventBus.Wait()
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			d.Logger.Error("close error", "error", err)
		}
	}
}

func startHTTPServer() {
	cfg, err := loadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	deps, err := initializeDependencies(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "roster_backend", cfg.Roster.Backend,
		"suggestion_provider", cfg.Suggestion.Provider)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Close()
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	base := transport.NewBaseHandler(deps.Logger)
	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health:  rest.NewHealthHandler(base, deps.Store, deps.Catalog.Len(), deps.Sessions.Len),
		Catalog: catalog.NewHandler(base, deps.Catalog),
		Roster:  roster.NewHandler(base, deps.RosterService),
		Session: session.NewHandler(base, deps.SessionService),
	}, deps.OpenAPISpec, deps.Logger)
}

func initializeDependencies(ctx context.Context, cfg *internal.Config) (*Dependencies, error) {
	lg := logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	spec, err := loadOpenAPISpec(ctx, cfg.Server.OpenAPIPath)
	if err != nil {
		return nil, err
	}

	c, err := catalog.FromConfig(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	deps := &Dependencies{
		Config:      cfg,
		Logger:      lg,
		Catalog:     c,
		OpenAPISpec: spec,
		Router:      chi.NewRouter(),
	}

	store, closeStore, err := initRosterStore(cfg.Roster)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	if closeStore != nil {
		deps.closers = append(deps.closers, closeStore)
	}

	deps.EventBus = events.NewEventBus(lg)
	deps.EventBus.Subscribe(events.AnyEvent, events.LogListener(lg))

	deps.RosterService = roster.NewService(store, c, deps.EventBus, lg)
	if cfg.Roster.Seed {
		if err := deps.RosterService.Seed(ctx, roster.DemoUsers()); err != nil {
			return nil, fmt.Errorf("failed to seed roster: %w", err)
		}
	}

	model, err := suggestion.NewModel(ctx, cfg.Suggestion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize suggestion model: %w", err)
	}
	client := suggestion.NewClient(model, cfg.Suggestion.Timeout, lg)

	deps.Sessions = session.NewRegistry(cfg.Session.MaxOpen, cfg.Session.IdleTTL, lg)
	deps.SessionService = session.NewService(deps.Sessions, deps.RosterService, c, client, deps.EventBus,
		session.Options{ApplyEmpty: cfg.Suggestion.ApplyEmpty}, lg)

	return deps, nil
}

// initRosterStore returns the configured backend and, when it holds a
// connection, a function closing it.
func initRosterStore(cfg internal.RosterConfig) (roster.Store, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		db, err := rosterSqlite.Open(rosterSqlite.MemoryDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite roster: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite roster: %w", err)
		}
		return rosterSqlite.NewStore(db), sqlDB.Close, nil
	default:
		return roster.NewMemoryStore(), nil, nil
	}
}

// loadOpenAPISpec reads the document from path, or the embedded one when
// path is empty, and validates it.
func loadOpenAPISpec(ctx context.Context, path string) ([]byte, error) {
	spec := api.OpenAPISpec
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read openapi document: %w", err)
		}
		spec = data
	}
	if _, err := rest.LoadOpenAPI(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}
