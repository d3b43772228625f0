package client

import (
	"time"

	"github.com/bamcapital/bam-portal/internal/models"
)

// fallbackFigures is the fixed per-category lookup table used when the
// advisory backend cannot generate a report. The figures mirror the
// backend's baseline model and must not drift: fallback-mode reports are
// compared against them verbatim.
var fallbackFigures = map[models.RiskCategory]struct {
	allocation models.AssetAllocation
	projection models.PerformanceProjection
	risk       models.RiskAssessment
}{
	models.RiskConservative: {
		allocation: models.AssetAllocation{Equity: 30, Debt: 50, Gold: 10, Cash: 10},
		projection: models.PerformanceProjection{Year1: 6, Year3: 7, Year5: 8},
		risk:       models.RiskAssessment{Volatility: "Low", Drawdown: "5-10%", RecoveryPeriod: "3-6 months"},
	},
	models.RiskModerate: {
		allocation: models.AssetAllocation{Equity: 50, Debt: 40, Gold: 5, Cash: 5},
		projection: models.PerformanceProjection{Year1: 9, Year3: 10, Year5: 12},
		risk:       models.RiskAssessment{Volatility: "Medium", Drawdown: "10-20%", RecoveryPeriod: "6-12 months"},
	},
	models.RiskAggressive: {
		allocation: models.AssetAllocation{Equity: 70, Debt: 20, Gold: 5, Cash: 5},
		projection: models.PerformanceProjection{Year1: 12, Year3: 15, Year5: 18},
		risk:       models.RiskAssessment{Volatility: "High", Drawdown: "20-30%", RecoveryPeriod: "1-2 years"},
	},
}

// FallbackReport synthesizes an investment report from the fixed lookup
// table. The report is marked Source=fallback so callers can distinguish
// it from backend data.
func FallbackReport(profile models.UserProfile, userID int) *models.InvestmentReport {
	figures, ok := fallbackFigures[profile.RiskCategory]
	if !ok {
		// Unknown categories take the Moderate row rather than failing:
		// the fallback path must always produce a renderable report.
		figures = fallbackFigures[models.RiskModerate]
	}

	return &models.InvestmentReport{
		RiskCategory: profile.RiskCategory,
		HorizonYears: profile.HorizonYears,
		AnnualIncome: profile.AnnualIncome,
		Allocation:   figures.allocation,
		Projection:   figures.projection,
		Risk:         figures.risk,
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
		Source:       models.SourceFallback,
	}
}
