// internal/repository/gateway.go
package repository

import (
	"context"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"

	"github.com/shopspring/decimal"
)

// Gateway defines the remote operations the dashboard core consumes. It is
// the single seam between the state-synchronization services and the
// transport; services never touch HTTP directly.
type Gateway interface {
	// GetUser retrieves the raw record of the signed-in user.
	GetUser(ctx context.Context) (domain.RawUser, error)
	// GetProjects retrieves the public project catalog.
	GetProjects(ctx context.Context) ([]domain.Project, error)
	// GetInvestments retrieves the signed-in user's investments.
	GetInvestments(ctx context.Context) ([]domain.Investment, error)
	// GetTransactions retrieves the signed-in user's wallet transactions.
	GetTransactions(ctx context.Context) ([]domain.Transaction, error)
	// GetNotifications retrieves the signed-in user's notifications with
	// the server-reported read flags.
	GetNotifications(ctx context.Context) ([]domain.Notification, error)
	// MarkNotificationsRead asks the server to mark notifications read,
	// optionally scoped to a single id. Best-effort on the server side.
	MarkNotificationsRead(ctx context.Context, scopeID domain.ID) error
	// GetMyListings retrieves the projects owned by the signed-in user.
	GetMyListings(ctx context.Context) ([]domain.Project, error)
	// GetRecentActivities retrieves the recent-activity feed.
	GetRecentActivities(ctx context.Context) ([]domain.Activity, error)
	// GetFundingStats retrieves the remote-computed dashboard stats.
	GetFundingStats(ctx context.Context) (*domain.FundingStats, error)
	// GetProjectWithdrawals retrieves the owner's withdrawal requests.
	GetProjectWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
	// RequestProjectWithdrawal submits a new withdrawal request.
	RequestProjectWithdrawal(ctx context.Context, projectID domain.ID, amount decimal.Decimal, reason string, phase int) error
}
