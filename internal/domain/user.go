// internal/domain/user.go
package domain

import "strings"

// Role classifies what the signed-in user can do in the dashboard.
type Role string

const (
	RoleInvestor     Role = "investor"
	RoleProjectOwner Role = "project_owner"
)

// BankAccount holds payout details. It is only populated when the server
// record carries all three fields; partial details are dropped.
type BankAccount struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
}

// User is the normalized authenticated identity. The id and role are fixed
// for the lifetime of a session.
type User struct {
	ID                ID           `json:"id"`
	DisplayName       string       `json:"display_name"`
	FirstName         string       `json:"first_name"`
	LastName          string       `json:"last_name"`
	Username          string       `json:"username"`
	Email             string       `json:"email"`
	Role              Role         `json:"role"`
	WalletBalance     Amount       `json:"wallet_balance"`
	CompanyName       string       `json:"company_name,omitempty"`
	IsVerified        bool         `json:"is_verified,omitempty"`
	ProfilePictureURL string       `json:"profile_picture_url,omitempty"`
	BankAccount       *BankAccount `json:"bank_account,omitempty"`
}

// RawUser is the wire shape of a user record as the server reports it.
// Field names and types vary across backend revisions; NormalizeUser maps
// it onto the canonical User.
type RawUser struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	WalletBalance  Amount `json:"walletBalance"`
	Balance        Amount `json:"balance"` // legacy field name
	CompanyName    string `json:"company_name"`
	IsVerified     bool   `json:"is_verified"`
	ProfilePicture string `json:"profile_picture"`
	AccountNumber  string `json:"account_number"`
	BankName       string `json:"bank_name"`
	AccountName    string `json:"account_name"`
}

// NormalizeUser converts a raw server user record into the canonical User.
// The role defaults to investor when absent or unrecognized. The wallet
// balance is taken from walletBalance when present, falling back to the
// legacy balance field; both coerce non-numeric input to zero. A bank
// account is attached only when all three payout fields are present.
func NormalizeUser(raw RawUser) *User {
	u := &User{
		ID:                raw.ID,
		DisplayName:       raw.Name,
		FirstName:         raw.FirstName,
		LastName:          raw.LastName,
		Username:          raw.Username,
		Email:             raw.Email,
		Role:              parseRole(raw.Role),
		WalletBalance:     raw.WalletBalance,
		CompanyName:       raw.CompanyName,
		IsVerified:        raw.IsVerified,
		ProfilePictureURL: raw.ProfilePicture,
	}
	if u.DisplayName == "" {
		u.DisplayName = strings.TrimSpace(raw.FirstName + " " + raw.LastName)
	}
	if u.WalletBalance.IsZero() && !raw.Balance.IsZero() {
		u.WalletBalance = raw.Balance
	}
	if raw.AccountNumber != "" && raw.BankName != "" && raw.AccountName != "" {
		u.BankAccount = &BankAccount{
			AccountNumber: raw.AccountNumber,
			BankName:      raw.BankName,
			AccountName:   raw.AccountName,
		}
	}
	return u
}

func parseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "project_owner", "project-owner", "projectowner", "owner":
		return RoleProjectOwner
	default:
		return RoleInvestor
	}
}
