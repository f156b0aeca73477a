// internal/domain/stats.go
package domain

import "time"

// MonthPoint is one bar of the funding chart.
type MonthPoint struct {
	Month  string `json:"month"`
	Amount Amount `json:"amount"`
}

// FundingStats is the remote-computed dashboard payload. It is replaced
// wholesale on each fetch, never merged field-by-field. TotalInvestors is
// always taken verbatim from here: the client cannot deduplicate investor
// identity across projects.
type FundingStats struct {
	GrowthPercentage   float64      `json:"growth_percentage"`
	CurrentMonthRaised Amount       `json:"current_month_raised"`
	LastMonthRaised    Amount       `json:"last_month_raised"`
	ChartData          []MonthPoint `json:"chart_data"`
	TotalInvestors     int          `json:"total_investors"`
	AvailableBalance   Amount       `json:"available_balance"`
}

// ActivityKind is the display classification of a recent-activity entry.
type ActivityKind string

const (
	ActivityDeposit    ActivityKind = "deposit"
	ActivityWithdrawal ActivityKind = "withdrawal"
	ActivityInvestment ActivityKind = "investment"
)

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Amount    Amount `json:"amount"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Kind maps the wire type onto a display classification. Both "investment"
// and "investment_received" render as investments; anything unrecognized
// does too, matching how deposits and withdrawals are the only other kinds
// the feed distinguishes.
func (a Activity) Kind() ActivityKind {
	switch a.Type {
	case "deposit":
		return ActivityDeposit
	case "withdrawal":
		return ActivityWithdrawal
	default:
		return ActivityInvestment
	}
}

// DisplayAmount returns the signed amount for rendering: negative for
// withdrawals, positive otherwise.
func (a Activity) DisplayAmount() Amount {
	abs := NewAmount(a.Amount.Abs())
	if a.Kind() == ActivityWithdrawal {
		return NewAmount(abs.Neg())
	}
	return abs
}

var activityTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// When parses the activity timestamp. The second return is false when the
// timestamp is missing or unusable, in which case the entry displays with
// no date suffix rather than an invalid date.
func (a Activity) When() (time.Time, bool) {
	if a.Timestamp == "" {
		return time.Time{}, false
	}
	for _, layout := range activityTimeLayouts {
		if t, err := time.Parse(layout, a.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
