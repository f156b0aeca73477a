// internal/domain/investment.go
package domain

// Investment is a stake a user holds in a project. Investments are
// append-only from the client's perspective; the client never mutates them
// locally, it only replaces the collection wholesale on each fetch.
type Investment struct {
	ID           ID     `json:"id"`
	ProjectID    ID     `json:"project_id"`
	ProjectTitle string `json:"project_title,omitempty"`
	Amount       Amount `json:"amount"`
	Status       string `json:"status,omitempty"`
	Date         string `json:"date,omitempty"`
}

// Transaction is a wallet movement record. Like investments, transactions
// are server-owned and append-only on the client.
type Transaction struct {
	ID          ID     `json:"id"`
	Type        string `json:"type,omitempty"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Date        string `json:"date,omitempty"`
}
