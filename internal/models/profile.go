// Package models defines data structures for the BAM portal.
package models

import "fmt"

// RiskCategory is the primary driver of all advisory figures.
type RiskCategory string

const (
	RiskConservative RiskCategory = "Conservative"
	RiskModerate     RiskCategory = "Moderate"
	RiskAggressive   RiskCategory = "Aggressive"
)

// Valid reports whether the category is one of the three known values.
func (r RiskCategory) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// Horizon bounds enforced by the profile form.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 20
)

// UserProfile is the investment profile submitted to report generation.
// Immutable once submitted.
type UserProfile struct {
	RiskCategory RiskCategory `json:"risk_appetite"`
	HorizonYears int          `json:"investment_horizon"`
	AnnualIncome float64      `json:"income_level"`
}

// Validate checks the profile invariants.
func (p UserProfile) Validate() error {
	if !p.RiskCategory.Valid() {
		return fmt.Errorf("invalid risk category: %q", p.RiskCategory)
	}
	if p.HorizonYears < MinHorizonYears || p.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("investment horizon must be %d-%d years, got %d", MinHorizonYears, MaxHorizonYears, p.HorizonYears)
	}
	if p.AnnualIncome <= 0 {
		return fmt.Errorf("annual income must be positive, got %v", p.AnnualIncome)
	}
	return nil
}
