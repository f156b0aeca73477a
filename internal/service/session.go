// internal/service/session.go
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore"
)

// Persisted local state keys.
const (
	KeySessionToken = "session.token"
	KeySessionUser  = "session.user"
)

// SessionManager owns the authenticated identity and the token lifecycle.
// It is the only component that mutates the User; everything else reads it
// through User().
type SessionManager struct {
	store   kvstore.Store
	gateway repository.Gateway
	logger  *slog.Logger

	mu      sync.RWMutex
	user    *domain.User
	epoch   uint64
	loading bool

	loadingDone sync.Once
	onLogin     func(context.Context)
	onLogout    func()
	subs        broadcaster
}

// NewSessionManager creates a SessionManager. The initial loading phase is
// considered active until the first CheckSession completes.
func NewSessionManager(store kvstore.Store, gateway repository.Gateway, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		gateway: gateway,
		logger:  logger,
		loading: true,
	}
}

// SetHooks registers the load hook fired after Login and the clear hook
// fired on Logout. The wiring layer uses these to trigger the user-data
// load and the user-scoped cache clear without a dependency cycle.
func (s *SessionManager) SetHooks(onLogin func(context.Context), onLogout func()) {
	s.onLogin = onLogin
	s.onLogout = onLogout
}

// CheckSession restores a session from the persisted token, if any. A
// failed user fetch silently demotes to the unauthenticated state: the
// token and cached user snapshot are dropped, nothing is surfaced to the
// caller. The initial loading phase terminates exactly once regardless of
// outcome.
func (s *SessionManager) CheckSession(ctx context.Context) {
	defer s.finishLoading()

	token, err := s.store.Get(KeySessionToken)
	if err != nil {
		return // no persisted session
	}
	if tokenExpired(token) {
		s.logger.Info("persisted session token expired, dropping it")
		s.clearPersisted()
		return
	}

	raw, err := s.gateway.GetUser(ctx)
	if err != nil {
		s.logger.Warn("session check failed, treating as unauthenticated", "error", err)
		s.clearPersisted()
		return
	}

	user := domain.NormalizeUser(raw)
	s.persistUser(user)

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.subs.notify()
}

// Login installs a normalized user and its token after external
// authentication, persists both, and fires the user-data load hook.
func (s *SessionManager) Login(ctx context.Context, token string, user *domain.User) {
	if err := s.store.Set(KeySessionToken, token); err != nil {
		s.logger.Warn("failed to persist session token", "error", err)
	}
	s.persistUser(user)

	s.mu.Lock()
	u := *user
	s.user = &u
	s.epoch++
	s.mu.Unlock()
	s.subs.notify()

	if s.onLogin != nil {
		s.onLogin(ctx)
	}
}

// Logout clears the user, the persisted token and the cached user snapshot,
// then fires the clear hook so user-scoped collections are dropped. The
// project catalog and the wishlist are deliberately left untouched.
func (s *SessionManager) Logout() {
	s.mu.Lock()
	s.user = nil
	s.epoch++
	s.mu.Unlock()

	s.clearPersisted()
	s.subs.notify()

	if s.onLogout != nil {
		s.onLogout()
	}
}

// User returns a copy of the current user, or nil when unauthenticated.
func (s *SessionManager) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	if s.user.BankAccount != nil {
		ba := *s.user.BankAccount
		u.BankAccount = &ba
	}
	return &u
}

// Authenticated reports whether a user is signed in.
func (s *SessionManager) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Epoch returns the current session generation. Loads capture it at issue
// time and discard their result if it changed before the write.
func (s *SessionManager) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Loading reports whether the initial session check is still in progress.
func (s *SessionManager) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the persisted session token, or "" when absent.
func (s *SessionManager) Token() string {
	token, err := s.store.Get(KeySessionToken)
	if err != nil {
		return ""
	}
	return token
}

// Subscribe registers an observer invoked after every session change.
func (s *SessionManager) Subscribe(fn func()) (cancel func()) {
	return s.subs.subscribe(fn)
}

func (s *SessionManager) finishLoading() {
	s.loadingDone.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.subs.notify()
	})
}

func (s *SessionManager) persistUser(user *domain.User) {
	buf, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("failed to encode user snapshot", "error", err)
		return
	}
	if err := s.store.Set(KeySessionUser, string(buf)); err != nil {
		s.logger.Warn("failed to persist user snapshot", "error", err)
	}
}

func (s *SessionManager) clearPersisted() {
	if err := s.store.Delete(KeySessionToken); err != nil {
		s.logger.Warn("failed to delete session token", "error", err)
	}
	if err := s.store.Delete(KeySessionUser); err != nil {
		s.logger.Warn("failed to delete user snapshot", "error", err)
	}
}

// tokenExpired inspects a JWT's exp claim locally to skip a doomed user
// fetch. Opaque (non-JWT) tokens pass through untouched: the server owns
// their validity.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
