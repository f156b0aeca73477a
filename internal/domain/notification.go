// internal/domain/notification.go
package domain

// Notification is a user-facing message. IsRead is the effective read
// state: the server-reported flag combined with the locally persisted
// read-id overlay (the backend does not durably track read state per user).
type Notification struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
	IsRead    bool   `json:"is_read"`
}
