// internal/service/dashboard.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
)

// Summary carries the derived owner-dashboard aggregates. It is computed
// on demand from cache contents plus the latest remote stats; nothing in it
// is cached beyond the current read.
type Summary struct {
	TotalRaised        decimal.Decimal
	PendingWithdrawals decimal.Decimal
	ActiveProjects     int
	FundedProjects     int
	VettingProjects    int
	TotalInvestors     int
	GrowthPercentage   float64
	AvailableBalance   decimal.Decimal
	ChartData          []domain.MonthPoint
	DisplayProjects    []domain.Project
	Activities         []domain.Activity
}

// maxDisplayProjects caps the dashboard's project card row.
const maxDisplayProjects = 4

// DashboardService holds the inputs to the derived aggregates: the owner's
// listings, the recent-activity feed and the remote-computed funding stats.
// Each input is replaced wholesale and independently on refresh.
type DashboardService struct {
	gateway  repository.Gateway
	cache    *EntityCache
	sessions SessionInfo
	logger   *slog.Logger

	mu         sync.RWMutex
	stats      *domain.FundingStats
	activities []domain.Activity
	listings   []domain.Project
	subs       broadcaster
}

// NewDashboardService creates an empty dashboard service.
func NewDashboardService(gateway repository.Gateway, cache *EntityCache, sessions SessionInfo, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		gateway:  gateway,
		cache:    cache,
		sessions: sessions,
		logger:   logger,
	}
}

// Refresh fetches listings, activities, funding stats and withdrawal
// requests concurrently. Unlike the cache's grouped user-data load, each
// input applies independently: a single failed fetch retains that input's
// previous value without blocking the others.
func (d *DashboardService) Refresh(ctx context.Context) error {
	epoch := d.sessions.Epoch()

	var (
		listings   []domain.Project
		activities []domain.Activity
		stats      *domain.FundingStats
		errs       [4]error
		wg         sync.WaitGroup
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		listings, errs[0] = d.gateway.GetMyListings(ctx)
	}()
	go func() {
		defer wg.Done()
		activities, errs[1] = d.gateway.GetRecentActivities(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, errs[2] = d.gateway.GetFundingStats(ctx)
	}()
	go func() {
		defer wg.Done()
		errs[3] = d.cache.LoadWithdrawals(ctx)
	}()
	wg.Wait()

	d.mu.Lock()
	if d.sessions.Epoch() != epoch {
		d.mu.Unlock()
		d.logger.Debug("discarding dashboard data fetched under a stale session")
		return nil
	}
	if errs[0] == nil {
		d.listings = listings
	}
	if errs[1] == nil {
		d.activities = activities
	}
	if errs[2] == nil {
		d.stats = stats
	}
	d.mu.Unlock()
	d.subs.notify()

	for _, err := range errs {
		if err != nil {
			d.logger.Warn("dashboard refresh partially failed", "error", err)
			return fmt.Errorf("dashboard refresh: %w", util.ErrFetchFailed)
		}
	}
	return nil
}

// Clear drops the dashboard inputs. Called on logout alongside the cache's
// user-scoped clear.
func (d *DashboardService) Clear() {
	d.mu.Lock()
	d.stats = nil
	d.activities = nil
	d.listings = nil
	d.mu.Unlock()
	d.subs.notify()
}

// Summary computes the derived aggregates from the current inputs.
func (d *DashboardService) Summary() Summary {
	d.mu.RLock()
	listings := append([]domain.Project(nil), d.listings...)
	activities := append([]domain.Activity(nil), d.activities...)
	stats := d.stats
	d.mu.RUnlock()

	s := Summary{
		TotalRaised:        decimal.Zero,
		PendingWithdrawals: decimal.Zero,
		AvailableBalance:   decimal.Zero,
		DisplayProjects:    displayProjects(listings),
		Activities:         DedupeActivities(activities),
	}
	for _, p := range listings {
		s.TotalRaised = s.TotalRaised.Add(p.RaisedAmount.Decimal)
		switch p.Status {
		case domain.ProjectStatusActive:
			s.ActiveProjects++
		case domain.ProjectStatusFunded:
			s.FundedProjects++
		case domain.ProjectStatusPending:
			s.VettingProjects++
		}
	}
	for _, w := range d.cache.Withdrawals() {
		if w.Status == domain.WithdrawalStatusPending {
			s.PendingWithdrawals = s.PendingWithdrawals.Add(w.Amount.Decimal)
		}
	}
	if stats != nil {
		// Investor totals come from the server verbatim: the client has no
		// visibility into cross-project investor identity to deduplicate.
		s.TotalInvestors = stats.TotalInvestors
		s.GrowthPercentage = stats.GrowthPercentage
		s.AvailableBalance = stats.AvailableBalance.Decimal
		s.ChartData = append([]domain.MonthPoint(nil), stats.ChartData...)
	}
	return s
}

// Stats returns the latest remote funding stats, or nil before the first
// successful fetch.
func (d *DashboardService) Stats() *domain.FundingStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stats == nil {
		return nil
	}
	st := *d.stats
	st.ChartData = append([]domain.MonthPoint(nil), d.stats.ChartData...)
	return &st
}

// Listings returns a copy of the owner's project listings.
func (d *DashboardService) Listings() []domain.Project {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Project(nil), d.listings...)
}

// RequestWithdrawal submits a withdrawal request as a foreground action:
// failure is surfaced to the caller and no optimistic state change is
// applied. On success the withdrawal collection is reloaded best-effort.
func (d *DashboardService) RequestWithdrawal(ctx context.Context, projectID domain.ID, amount decimal.Decimal, reason string, phase int) error {
	if !amount.IsPositive() {
		return fmt.Errorf("withdrawal amount must be positive: %w", util.ErrInvalidInput)
	}
	if projectID.IsZero() {
		return fmt.Errorf("withdrawal requires a project: %w", util.ErrInvalidInput)
	}
	if !d.sessions.Authenticated() {
		return util.ErrNoSession
	}
	if err := d.gateway.RequestProjectWithdrawal(ctx, projectID, amount, reason, phase); err != nil {
		d.logger.Warn("withdrawal request rejected", "project_id", projectID, "error", err)
		return fmt.Errorf("request withdrawal: %w", util.ErrActionFailed)
	}
	if err := d.cache.LoadWithdrawals(ctx); err != nil {
		d.logger.Warn("withdrawal reload after submit failed", "error", err)
	}
	return nil
}

// Subscribe registers an observer invoked after every dashboard change.
func (d *DashboardService) Subscribe(fn func()) (cancel func()) {
	return d.subs.subscribe(fn)
}

// displayProjects sorts the owner's projects with funded ones first
// (descending by raised amount) and zero-raised ones after, in their
// original relative order, truncated to the card row cap.
func displayProjects(projects []domain.Project) []domain.Project {
	out := append([]domain.Project(nil), projects...)
	sort.SliceStable(out, func(i, j int) bool {
		iFunded := out[i].RaisedAmount.IsPositive()
		jFunded := out[j].RaisedAmount.IsPositive()
		if iFunded != jFunded {
			return iFunded
		}
		return out[i].RaisedAmount.GreaterThan(out[j].RaisedAmount.Decimal)
	})
	if len(out) > maxDisplayProjects {
		out = out[:maxDisplayProjects]
	}
	return out
}

// DedupeActivities removes duplicate feed entries by id, first occurrence
// wins with stable order. Entries without an id are never treated as
// duplicates of anything.
func DedupeActivities(activities []domain.Activity) []domain.Activity {
	seen := make(map[domain.ID]struct{}, len(activities))
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.ID.IsZero() {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}
