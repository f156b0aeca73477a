// internal/service/mocks_test.go
package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
)

// MockGateway is a mock implementation of repository.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetUser(ctx context.Context) (domain.RawUser, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RawUser), args.Error(1)
}

func (m *MockGateway) GetProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockGateway) GetInvestments(ctx context.Context) ([]domain.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

func (m *MockGateway) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockGateway) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockGateway) MarkNotificationsRead(ctx context.Context, scopeID domain.ID) error {
	args := m.Called(ctx, scopeID)
	return args.Error(0)
}

func (m *MockGateway) GetMyListings(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockGateway) GetRecentActivities(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockGateway) GetFundingStats(ctx context.Context) (*domain.FundingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingStats), args.Error(1)
}

func (m *MockGateway) GetProjectWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WithdrawalRequest), args.Error(1)
}

func (m *MockGateway) RequestProjectWithdrawal(ctx context.Context, projectID domain.ID, amount decimal.Decimal, reason string, phase int) error {
	args := m.Called(ctx, projectID, amount, reason, phase)
	return args.Error(0)
}

// fakeSession is a controllable SessionInfo for cache and dashboard tests.
type fakeSession struct {
	mu     sync.Mutex
	epoch  uint64
	authed bool
}

func (f *fakeSession) Epoch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

func (f *fakeSession) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeSession) bump() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.epoch++
}
