// internal/service/cache_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore"
)

func newCacheFixture(t *testing.T) (*EntityCache, *MockGateway, *fakeSession) {
	t.Helper()
	gateway := new(MockGateway)
	sessions := &fakeSession{authed: true}
	reconciler := NewNotificationReconciler(kvstore.NewMemoryStore(), gateway, util.GetLogger())
	cache := NewEntityCache(gateway, sessions, reconciler, util.GetLogger())
	return cache, gateway, sessions
}

func TestLoadProjectsReplacesWholesale(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{
		{ID: domain.ID("1"), Title: "Solar Farm"},
		{ID: domain.ID("2"), Title: "Agro Hub"},
	}, nil).Once()
	require.NoError(t, cache.LoadProjects(context.Background()))
	require.Len(t, cache.Projects(), 2)

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{
		{ID: domain.ID("3"), Title: "Fintech Lab"},
	}, nil).Once()
	require.NoError(t, cache.LoadProjects(context.Background()))

	projects := cache.Projects()
	require.Len(t, projects, 1, "replace must be wholesale, not a merge")
	assert.Equal(t, domain.ID("3"), projects[0].ID)
}

func TestLoadProjectsRetainsPreviousOnFailure(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{
		{ID: domain.ID("1")},
	}, nil).Once()
	require.NoError(t, cache.LoadProjects(context.Background()))

	gateway.On("GetProjects", mock.Anything).Return(nil, errors.New("network down")).Once()
	err := cache.LoadProjects(context.Background())

	assert.ErrorIs(t, err, util.ErrFetchFailed)
	assert.Len(t, cache.Projects(), 1, "failed fetch must retain last known good state")
}

func TestLoadUserDataIsAllOrNothing(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)

	gateway.On("GetInvestments", mock.Anything).Return([]domain.Investment{{ID: domain.ID("i1")}}, nil)
	gateway.On("GetTransactions", mock.Anything).Return([]domain.Transaction{{ID: domain.ID("t1")}}, nil)
	gateway.On("GetNotifications", mock.Anything).Return(nil, errors.New("boom")).Once()

	err := cache.LoadUserData(context.Background())
	assert.ErrorIs(t, err, util.ErrFetchFailed)
	assert.Empty(t, cache.Investments(), "a failed grouped load must apply nothing")
	assert.Empty(t, cache.Transactions())
	assert.Empty(t, cache.Notifications())

	// A subsequent call is independent.
	gateway.On("GetNotifications", mock.Anything).Return([]domain.Notification{{ID: domain.ID("n1")}}, nil)
	require.NoError(t, cache.LoadUserData(context.Background()))
	assert.Len(t, cache.Investments(), 1)
	assert.Len(t, cache.Transactions(), 1)
	assert.Len(t, cache.Notifications(), 1)
}

func TestLoadUserDataAppliesReadOverlay(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)
	require.NoError(t, cache.reconciler.store.Set(KeyReadNotifications, `["n1"]`))

	gateway.On("GetInvestments", mock.Anything).Return([]domain.Investment{}, nil)
	gateway.On("GetTransactions", mock.Anything).Return([]domain.Transaction{}, nil)
	gateway.On("GetNotifications", mock.Anything).Return([]domain.Notification{
		{ID: domain.ID("n1"), IsRead: false},
		{ID: domain.ID("n2"), IsRead: false},
	}, nil)

	require.NoError(t, cache.LoadUserData(context.Background()))

	notifications := cache.Notifications()
	require.Len(t, notifications, 2)
	assert.True(t, notifications[0].IsRead, "locally marked id must read as effective read")
	assert.False(t, notifications[1].IsRead)
	assert.Equal(t, 1, cache.UnreadNotifications())
}

func TestLoadUserDataDiscardsStaleSessionResult(t *testing.T) {
	cache, gateway, sessions := newCacheFixture(t)

	// Logout happens while the fetch is in flight: the epoch captured at
	// issue time no longer matches at write time.
	gateway.On("GetInvestments", mock.Anything).Return([]domain.Investment{{ID: domain.ID("i1")}}, nil).Run(func(mock.Arguments) {
		sessions.bump()
	})
	gateway.On("GetTransactions", mock.Anything).Return([]domain.Transaction{{ID: domain.ID("t1")}}, nil)
	gateway.On("GetNotifications", mock.Anything).Return([]domain.Notification{}, nil)

	require.NoError(t, cache.LoadUserData(context.Background()))

	assert.Empty(t, cache.Investments(), "in-flight load must not resurrect cleared state")
	assert.Empty(t, cache.Transactions())
}

func TestLoadWithdrawalsDiscardsStaleSessionResult(t *testing.T) {
	cache, gateway, sessions := newCacheFixture(t)

	gateway.On("GetProjectWithdrawals", mock.Anything).Return([]domain.WithdrawalRequest{
		{ID: domain.ID("w1")},
	}, nil).Run(func(mock.Arguments) {
		sessions.bump()
	})

	require.NoError(t, cache.LoadWithdrawals(context.Background()))
	assert.Empty(t, cache.Withdrawals())
}

func TestClearUserDataKeepsProjects(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{{ID: domain.ID("1")}}, nil)
	gateway.On("GetInvestments", mock.Anything).Return([]domain.Investment{{ID: domain.ID("i1")}}, nil)
	gateway.On("GetTransactions", mock.Anything).Return([]domain.Transaction{{ID: domain.ID("t1")}}, nil)
	gateway.On("GetNotifications", mock.Anything).Return([]domain.Notification{{ID: domain.ID("n1")}}, nil)
	require.NoError(t, cache.LoadProjects(context.Background()))
	require.NoError(t, cache.LoadUserData(context.Background()))

	cache.ClearUserData()

	assert.Len(t, cache.Projects(), 1, "the project catalog is public and survives logout")
	assert.Empty(t, cache.Investments())
	assert.Empty(t, cache.Transactions())
	assert.Empty(t, cache.Notifications())
	assert.Empty(t, cache.Withdrawals())
}

func TestRefreshSkipsUserDataWhenUnauthenticated(t *testing.T) {
	cache, gateway, sessions := newCacheFixture(t)
	sessions.authed = false

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{{ID: domain.ID("1")}}, nil)

	require.NoError(t, cache.Refresh(context.Background()))
	gateway.AssertNotCalled(t, "GetInvestments", mock.Anything)
	gateway.AssertNotCalled(t, "GetNotifications", mock.Anything)
}

func TestSubscribeNotifiedOnCacheChange(t *testing.T) {
	cache, gateway, _ := newCacheFixture(t)

	calls := 0
	cancel := cache.Subscribe(func() { calls++ })
	defer cancel()

	gateway.On("GetProjects", mock.Anything).Return([]domain.Project{}, nil)
	require.NoError(t, cache.LoadProjects(context.Background()))
	assert.Equal(t, 1, calls)

	cache.ClearUserData()
	assert.Equal(t, 2, calls)
}
