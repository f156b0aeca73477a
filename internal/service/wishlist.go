// internal/service/wishlist.go
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/domain"
	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore"
)

// KeyWishlist is the persisted ordered list of saved project ids.
const KeyWishlist = "wishlist.items"

// WishlistStore is a locally persisted saved-items list. It is independent
// of server state: a wishlisted id with no matching project is valid and
// simply yields nothing at query time. Ids are compared by string identity
// to tolerate numeric/string inconsistency from upstream sources.
type WishlistStore struct {
	store  kvstore.Store
	logger *slog.Logger

	mu  sync.RWMutex
	ids []string // ordered, unique
}

// NewWishlistStore loads the persisted list. Missing or malformed state
// starts empty.
func NewWishlistStore(store kvstore.Store, logger *slog.Logger) *WishlistStore {
	w := &WishlistStore{store: store, logger: logger}
	raw, err := store.Get(KeyWishlist)
	if err == nil {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			w.ids = ids
		}
	}
	return w
}

// Add appends id to the list if absent and persists immediately.
func (w *WishlistStore) Add(id domain.ID) error {
	key := id.String()
	if key == "" {
		return fmt.Errorf("wishlist add: %w", util.ErrInvalidInput)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.ids {
		if existing == key {
			return nil
		}
	}
	w.ids = append(w.ids, key)
	return w.persistLocked()
}

// Remove deletes id from the list and persists immediately.
func (w *WishlistStore) Remove(id domain.ID) error {
	key := id.String()
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.ids[:0]
	removed := false
	for _, existing := range w.ids {
		if existing == key {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return nil
	}
	w.ids = kept
	return w.persistLocked()
}

// Clear empties the list and persists immediately.
func (w *WishlistStore) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = nil
	return w.persistLocked()
}

// List returns the saved ids in insertion order.
func (w *WishlistStore) List() []domain.ID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.ID, len(w.ids))
	for i, id := range w.ids {
		out[i] = domain.ID(id)
	}
	return out
}

// Contains reports whether id is wishlisted, by string identity.
func (w *WishlistStore) Contains(id domain.ID) bool {
	key := id.String()
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, existing := range w.ids {
		if existing == key {
			return true
		}
	}
	return false
}

// Filter returns the projects that are wishlisted and whose title or
// description contains searchTerm, case-insensitively. An empty term
// matches every wishlisted project.
func (w *WishlistStore) Filter(projects []domain.Project, searchTerm string) []domain.Project {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	var out []domain.Project
	for _, p := range projects {
		if !w.Contains(p.ID) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (w *WishlistStore) persistLocked() error {
	buf, err := json.Marshal(w.ids)
	if err != nil {
		return fmt.Errorf("wishlist: encode: %w", err)
	}
	if err := w.store.Set(KeyWishlist, string(buf)); err != nil {
		return fmt.Errorf("wishlist: persist: %w", err)
	}
	return nil
}
