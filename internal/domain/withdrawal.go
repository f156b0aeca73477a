// internal/domain/withdrawal.go
package domain

// WithdrawalStatus is the server-driven state of a withdrawal request.
// The client only ever appends requests; status transitions happen on the
// server and arrive through refetches.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a project owner's request to pay out raised funds.
type WithdrawalRequest struct {
	ID          ID               `json:"id"`
	ProjectID   ID               `json:"project_id"`
	Amount      Amount           `json:"amount"`
	Status      WithdrawalStatus `json:"status"`
	Reason      string           `json:"reason,omitempty"`
	Phase       int              `json:"phase,omitempty"`
	RequestDate string           `json:"request_date,omitempty"`
}
