// internal/service/notifications.go
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/repository"
	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore"
)

// KeyReadNotifications is the persisted set of notification ids the client
// has marked read.
const KeyReadNotifications = "notifications.read"

// NotificationReconciler compensates for a backend that does not durably
// track per-user read state: it overlays a locally persisted set of read
// ids onto every raw notification fetch. It is deliberately isolated so
// that a future server-side fix can remove the overlay without touching
// consumers.
type NotificationReconciler struct {
	store   kvstore.Store
	gateway repository.Gateway
	logger  *slog.Logger

	// mu serializes read-modify-write cycles on the persisted id set.
	mu sync.Mutex
}

// NewNotificationReconciler creates a reconciler over the given store.
func NewNotificationReconciler(store kvstore.Store, gateway repository.Gateway, logger *slog.Logger) *NotificationReconciler {
	return &NotificationReconciler{store: store, gateway: gateway, logger: logger}
}

// Apply derives the effective read state for each incoming notification:
// serverIsRead OR id in the local read-id set. The input is not mutated.
func (r *NotificationReconciler) Apply(notifications []domain.Notification) []domain.Notification {
	read := r.readIDSet()
	out := make([]domain.Notification, len(notifications))
	copy(out, notifications)
	for i := range out {
		if _, ok := read[out[i].ID.String()]; ok {
			out[i].IsRead = true
		}
	}
	return out
}

// MarkAllRead attempts a best-effort server call (optionally scoped to a
// single id), then marks every currently-held notification read and
// persists the full id set so a subsequent fetch re-derives the same
// state. Server failure is swallowed: the local fallback keeps the view
// consistent. The operation is idempotent.
func (r *NotificationReconciler) MarkAllRead(ctx context.Context, scopeID domain.ID, current []domain.Notification) []domain.Notification {
	if err := r.gateway.MarkNotificationsRead(ctx, scopeID); err != nil {
		r.logger.Warn("server mark-read failed, applying local fallback", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.readIDList()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	out := make([]domain.Notification, len(current))
	copy(out, current)
	for i := range out {
		out[i].IsRead = true
		id := out[i].ID.String()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	r.persistIDs(ids)
	return out
}

// UnreadCount counts notifications whose effective read state is unread.
func (r *NotificationReconciler) UnreadCount(notifications []domain.Notification) int {
	n := 0
	for _, notif := range notifications {
		if !notif.IsRead {
			n++
		}
	}
	return n
}

func (r *NotificationReconciler) readIDSet() map[string]struct{} {
	ids := r.readIDList()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// readIDList loads the persisted ordered id list. Missing or malformed
// state is treated as empty.
func (r *NotificationReconciler) readIDList() []string {
	raw, err := r.store.Get(KeyReadNotifications)
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func (r *NotificationReconciler) persistIDs(ids []string) {
	buf, err := json.Marshal(ids)
	if err != nil {
		r.logger.Warn("failed to encode read-id set", "error", err)
		return
	}
	if err := r.store.Set(KeyReadNotifications, string(buf)); err != nil {
		r.logger.Warn("failed to persist read-id set", "error", err)
	}
}
