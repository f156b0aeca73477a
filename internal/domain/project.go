// internal/domain/project.go
package domain

// ProjectStatus is the lifecycle state of a fundraising project.
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusFunded    ProjectStatus = "funded"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusRejected  ProjectStatus = "rejected"
)

// Project is a fundraising listing. Projects are public catalog data: they
// survive logout, unlike the user-scoped collections.
type Project struct {
	ID               ID            `json:"id"`
	UUID             string        `json:"uuid,omitempty"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Sector           string        `json:"sector,omitempty"`
	Category         string        `json:"category,omitempty"`
	Location         string        `json:"location,omitempty"`
	Image            string        `json:"image,omitempty"`
	Status           ProjectStatus `json:"status"`
	RaisedAmount     Amount        `json:"raised_amount"`
	TargetAmount     Amount        `json:"target_amount"`
	CurrentPhase     int           `json:"current_phase,omitempty"`
	TotalPhases      int           `json:"total_phases,omitempty"`
	MinInvestment    Amount        `json:"min_investment,omitempty"`
	ROI              float64       `json:"roi,omitempty"`
	EquityPercentage float64       `json:"equity_percentage,omitempty"`
	IsVerified       bool          `json:"is_verified,omitempty"`
}

// Progress returns the funding completion percentage, clamped to 100.
// The server may transiently report raised > target pending reconciliation;
// that is tolerated here and only the displayed value is clamped.
func (p Project) Progress() float64 {
	if !p.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := p.RaisedAmount.Div(p.TargetAmount.Decimal).Mul(hundred).Float64()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
