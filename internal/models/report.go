package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Report provenance values. Fallback reports are synthesized locally when
// the advisory backend is unreachable; callers can tell them apart.
const (
	SourceBackend  = "backend"
	SourceFallback = "fallback"
)

// AssetAllocation holds recommended portfolio weights in percent.
type AssetAllocation struct {
	Equity float64 `json:"equity"`
	Debt   float64 `json:"debt"`
	Gold   float64 `json:"gold"`
	Cash   float64 `json:"cash"`
}

// Sum returns the total of all four weights.
func (a AssetAllocation) Sum() float64 {
	return a.Equity + a.Debt + a.Gold + a.Cash
}

// PerformanceProjection holds expected percentage returns by horizon.
type PerformanceProjection struct {
	Year1 float64 `json:"year1"`
	Year3 float64 `json:"year3"`
	Year5 float64 `json:"year5"`
}

// RiskAssessment holds descriptive risk figures. All three are free-form
// strings from the backend ("Low", "5-10%", "3-6 months").
type RiskAssessment struct {
	Volatility     string `json:"volatility"`
	Drawdown       string `json:"drawdown"`
	RecoveryPeriod string `json:"recoveryPeriod"`
}

// InvestmentReport is a generated report with the three sub-documents
// decoded and validated at the API boundary. Read-only once created;
// destroyed when the generator is reset.
type InvestmentReport struct {
	ID           int                   `json:"id,omitempty"`
	RiskCategory RiskCategory          `json:"risk_appetite"`
	HorizonYears int                   `json:"investment_horizon"`
	AnnualIncome float64               `json:"income_level"`
	Allocation   AssetAllocation       `json:"asset_allocation"`
	Projection   PerformanceProjection `json:"performance_projection"`
	Risk         RiskAssessment        `json:"risk_assessment"`
	UserID       int                   `json:"user_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at,omitempty"`
	Source       string                `json:"source"`
}

// ReportRecord is the wire form of a report as the advisory backend stores
// it: a flat record whose allocation, projection, and risk fields are
// JSON-encoded sub-documents.
type ReportRecord struct {
	ID                    int    `json:"id,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
	RiskAppetite          string `json:"risk_appetite"`
	InvestmentHorizon     int    `json:"investment_horizon"`
	IncomeLevel           float64 `json:"income_level"`
	AssetAllocation       string `json:"asset_allocation"`
	PerformanceProjection string `json:"performance_projection"`
	RiskAssessment        string `json:"risk_assessment"`
	UserID                int    `json:"user_id,omitempty"`
}

// DocError describes a malformed or invalid report sub-document.
type DocError struct {
	Field string
	Err   error
}

func (e *DocError) Error() string {
	return fmt.Sprintf("report document %q: %v", e.Field, e.Err)
}

func (e *DocError) Unwrap() error { return e.Err }

// DecodeReport decodes a wire record into a typed report, validating the
// three sub-documents. A malformed sub-document returns a *DocError rather
// than deferring the failure to render time.
func DecodeReport(rec ReportRecord) (*InvestmentReport, error) {
	r := &InvestmentReport{
		ID:           rec.ID,
		RiskCategory: RiskCategory(rec.RiskAppetite),
		HorizonYears: rec.InvestmentHorizon,
		AnnualIncome: rec.IncomeLevel,
		UserID:       rec.UserID,
		Source:       SourceBackend,
	}

	if err := json.Unmarshal([]byte(rec.AssetAllocation), &r.Allocation); err != nil {
		return nil, &DocError{Field: "asset_allocation", Err: err}
	}
	if err := validateAllocation(r.Allocation); err != nil {
		return nil, &DocError{Field: "asset_allocation", Err: err}
	}
	if err := json.Unmarshal([]byte(rec.PerformanceProjection), &r.Projection); err != nil {
		return nil, &DocError{Field: "performance_projection", Err: err}
	}
	if err := json.Unmarshal([]byte(rec.RiskAssessment), &r.Risk); err != nil {
		return nil, &DocError{Field: "risk_assessment", Err: err}
	}

	if rec.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			r.CreatedAt = t
		}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	return r, nil
}

// validateAllocation checks each weight is a finite value in [0, 100].
// A sum other than 100 is accepted; the backend does not guarantee it and
// the caller logs the discrepancy instead of rejecting the record.
func validateAllocation(a AssetAllocation) error {
	for name, v := range map[string]float64{
		"equity": a.Equity,
		"debt":   a.Debt,
		"gold":   a.Gold,
		"cash":   a.Cash,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
			return fmt.Errorf("%s weight out of range: %v", name, v)
		}
	}
	return nil
}
