// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/config"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository/rest"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/service"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore"
)

// Application holds all the initialized components of the dashboard core.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	Store  kvstore.Store

	// Remote gateway
	Gateway repository.Gateway

	// State services
	Sessions      *service.SessionManager
	Cache         *service.EntityCache
	Notifications *service.NotificationReconciler
	Dashboard     *service.DashboardService
	Wishlist      *service.WishlistStore

	// Pollers, bound to consumer lifetimes by the caller
	NotificationPoller *service.Scheduler
	DashboardPoller    *service.Scheduler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Open the key-value store
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open key-value store: %w", err)
	}
	app.Store = store
	app.Logger.Info("Key-value store opened.", "backend", cfg.StorageBackend)

	// 4. Initialize the remote gateway. The token provider reads the
	// persisted token directly so the gateway carries no session state.
	app.Gateway = rest.NewClient(cfg.APIBaseURL, cfg.APITimeout, func() string {
		token, err := store.Get(service.KeySessionToken)
		if err != nil {
			return ""
		}
		return token
	}, app.Logger)

	// 5. Initialize state services
	app.Sessions = service.NewSessionManager(app.Store, app.Gateway, app.Logger)
	app.Notifications = service.NewNotificationReconciler(app.Store, app.Gateway, app.Logger)
	app.Cache = service.NewEntityCache(app.Gateway, app.Sessions, app.Notifications, app.Logger)
	app.Dashboard = service.NewDashboardService(app.Gateway, app.Cache, app.Sessions, app.Logger)
	app.Wishlist = service.NewWishlistStore(app.Store, app.Logger)

	// Login triggers the user-data load; logout drops every user-scoped
	// collection while leaving the project catalog and wishlist intact.
	app.Sessions.SetHooks(
		func(ctx context.Context) {
			if err := app.Cache.LoadUserData(ctx); err != nil {
				app.Logger.Warn("post-login user data load failed", "error", err)
			}
		},
		func() {
			app.Cache.ClearUserData()
			app.Dashboard.Clear()
		},
	)
	app.Logger.Info("State services initialized.")

	// 6. Initialize pollers (armed by the consumer, not here)
	app.NotificationPoller = service.NewScheduler("notifications", cfg.NotificationPollInterval, func(ctx context.Context) {
		if err := app.Cache.LoadUserData(ctx); err != nil {
			app.Logger.Warn("notification poll failed", "error", err)
		}
	}, app.Logger)
	app.DashboardPoller = service.NewScheduler("dashboard", cfg.DashboardPollInterval, func(ctx context.Context) {
		if err := app.Dashboard.Refresh(ctx); err != nil {
			app.Logger.Warn("dashboard poll failed", "error", err)
		}
	}, app.Logger)

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.NotificationPoller != nil {
		app.NotificationPoller.Stop()
	}
	if app.DashboardPoller != nil {
		app.DashboardPoller.Stop()
	}
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Error("Failed to close key-value store", "error", err)
			return fmt.Errorf("failed to close key-value store: %w", err)
		}
		app.Logger.Info("Key-value store closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}

func openStore(cfg *config.AppConfig) (kvstore.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return kvstore.NewMemoryStore(), nil
	case config.StoragePostgres:
		return kvstore.OpenPostgresStore(cfg.Postgres)
	default:
		return kvstore.OpenFileStore(cfg.StoragePath)
	}
}
