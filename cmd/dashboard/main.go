package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/loopitalfinance/loopitalfrontend-sub001/internal"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create and initialize the application
	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Startup sequence: restore the session, load the public catalog, and
	// arm the pollers for the signed-in view.
	application.Sessions.CheckSession(ctx)
	if err := application.Cache.LoadProjects(ctx); err != nil {
		application.Logger.Warn("Initial project load failed", "error", err)
	}
	if application.Sessions.Authenticated() {
		user := application.Sessions.User()
		application.Logger.Info("Session restored", "user", user.Username, "role", user.Role)
		application.NotificationPoller.Start(ctx)
		application.DashboardPoller.Start(ctx)
	} else {
		application.Logger.Info("No active session, serving public catalog only")
	}

	// Log a state line whenever the cache changes, standing in for the
	// rendering layer.
	unsubscribe := application.Cache.Subscribe(func() {
		application.Logger.Debug("State changed",
			"projects", len(application.Cache.Projects()),
			"unread_notifications", application.Cache.UnreadNotifications(),
		)
	})
	defer unsubscribe()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	application.Logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("Application shutdown failed", "error", err)
		os.Exit(1)
	}

	application.Logger.Info("Application gracefully stopped.")
}
