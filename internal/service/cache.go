// internal/service/cache.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
)

// SessionInfo provides the session facts the cache needs to tag and guard
// user-scoped writes.
type SessionInfo interface {
	Epoch() uint64
	Authenticated() bool
}

// EntityCache holds the authoritative snapshot of the domain collections.
// Every load replaces its collection wholesale; a failed fetch retains the
// previous value. User-scoped writes are epoch-tagged: a load whose session
// generation no longer matches at write time is discarded, so an in-flight
// fetch can never resurrect state cleared by logout.
type EntityCache struct {
	gateway    repository.Gateway
	sessions   SessionInfo
	reconciler *NotificationReconciler
	logger     *slog.Logger

	mu            sync.RWMutex
	projects      []domain.Project
	investments   []domain.Investment
	transactions  []domain.Transaction
	notifications []domain.Notification
	withdrawals   []domain.WithdrawalRequest
	subs          broadcaster
}

// NewEntityCache creates an empty cache.
func NewEntityCache(gateway repository.Gateway, sessions SessionInfo, reconciler *NotificationReconciler, logger *slog.Logger) *EntityCache {
	return &EntityCache{
		gateway:    gateway,
		sessions:   sessions,
		reconciler: reconciler,
		logger:     logger,
	}
}

// LoadProjects replaces the public project catalog. Projects are not
// session-scoped, so no epoch guard applies.
func (c *EntityCache) LoadProjects(ctx context.Context) error {
	projects, err := c.gateway.GetProjects(ctx)
	if err != nil {
		c.logger.Warn("project load failed, retaining previous catalog", "error", err)
		return fmt.Errorf("load projects: %w", util.ErrFetchFailed)
	}
	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()
	c.subs.notify()
	return nil
}

// LoadUserData fetches investments, transactions and notifications
// concurrently as one logical unit. If any of the three fails, nothing is
// applied for this cycle; a subsequent call is independent. Notifications
// pass through the reconciler overlay before storage.
func (c *EntityCache) LoadUserData(ctx context.Context) error {
	epoch := c.sessions.Epoch()

	var (
		investments   []domain.Investment
		transactions  []domain.Transaction
		notifications []domain.Notification
		errs          [3]error
		wg            sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		investments, errs[0] = c.gateway.GetInvestments(ctx)
	}()
	go func() {
		defer wg.Done()
		transactions, errs[1] = c.gateway.GetTransactions(ctx)
	}()
	go func() {
		defer wg.Done()
		notifications, errs[2] = c.gateway.GetNotifications(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.logger.Warn("user data load failed, retaining previous collections", "error", err)
			return fmt.Errorf("load user data: %w", util.ErrFetchFailed)
		}
	}

	notifications = c.reconciler.Apply(notifications)

	c.mu.Lock()
	if c.sessions.Epoch() != epoch {
		c.mu.Unlock()
		c.logger.Debug("discarding user data fetched under a stale session")
		return nil
	}
	c.investments = investments
	c.transactions = transactions
	c.notifications = notifications
	c.mu.Unlock()
	c.subs.notify()
	return nil
}

// LoadWithdrawals replaces the owner's withdrawal request collection.
func (c *EntityCache) LoadWithdrawals(ctx context.Context) error {
	epoch := c.sessions.Epoch()
	withdrawals, err := c.gateway.GetProjectWithdrawals(ctx)
	if err != nil {
		c.logger.Warn("withdrawal load failed, retaining previous collection", "error", err)
		return fmt.Errorf("load withdrawals: %w", util.ErrFetchFailed)
	}
	c.mu.Lock()
	if c.sessions.Epoch() != epoch {
		c.mu.Unlock()
		c.logger.Debug("discarding withdrawals fetched under a stale session")
		return nil
	}
	c.withdrawals = withdrawals
	c.mu.Unlock()
	c.subs.notify()
	return nil
}

// Refresh reloads the project catalog always, and the user-scoped
// collections only while a session is active.
func (c *EntityCache) Refresh(ctx context.Context) error {
	err := c.LoadProjects(ctx)
	if c.sessions.Authenticated() {
		if uerr := c.LoadUserData(ctx); err == nil {
			err = uerr
		}
	}
	return err
}

// ClearUserData drops every user-scoped collection. The project catalog is
// public and survives.
func (c *EntityCache) ClearUserData() {
	c.mu.Lock()
	c.investments = nil
	c.transactions = nil
	c.notifications = nil
	c.withdrawals = nil
	c.mu.Unlock()
	c.subs.notify()
}

// MarkAllNotificationsRead runs the reconciler's mark-all flow against the
// currently-held notifications and stores the result. Server failure is
// swallowed inside the reconciler (optimistic fallback), so this never
// fails from the caller's point of view.
func (c *EntityCache) MarkAllNotificationsRead(ctx context.Context, scopeID domain.ID) {
	updated := c.reconciler.MarkAllRead(ctx, scopeID, c.Notifications())
	c.mu.Lock()
	c.notifications = updated
	c.mu.Unlock()
	c.subs.notify()
}

// UnreadNotifications returns the count of effectively unread notifications.
func (c *EntityCache) UnreadNotifications() int {
	return c.reconciler.UnreadCount(c.Notifications())
}

// Projects returns a copy of the current project catalog.
func (c *EntityCache) Projects() []domain.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Project(nil), c.projects...)
}

// Investments returns a copy of the current investment collection.
func (c *EntityCache) Investments() []domain.Investment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Investment(nil), c.investments...)
}

// Transactions returns a copy of the current transaction collection.
func (c *EntityCache) Transactions() []domain.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Transaction(nil), c.transactions...)
}

// Notifications returns a copy of the current notification collection with
// effective read state applied.
func (c *EntityCache) Notifications() []domain.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Notification(nil), c.notifications...)
}

// Withdrawals returns a copy of the current withdrawal request collection.
func (c *EntityCache) Withdrawals() []domain.WithdrawalRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.WithdrawalRequest(nil), c.withdrawals...)
}

// Subscribe registers an observer invoked after every cache change.
func (c *EntityCache) Subscribe(fn func()) (cancel func()) {
	return c.subs.subscribe(fn)
}
