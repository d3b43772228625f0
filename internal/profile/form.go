// Package profile implements investment-profile capture: three scalar
// inputs collected into an immutable UserProfile value.
package profile

import (
	"errors"
	"math"
	"strconv"

	"github.com/bamcapital/bam-portal/internal/models"
)

// ErrNotReady is returned by Submit when a field does not yet hold a
// valid value.
var ErrNotReady = errors.New("profile form incomplete")

// Form accumulates the three profile fields with the same semantics as
// the original input controls: the horizon slider clamps to its range,
// and an unparseable income entry leaves the previous valid value in
// place. The form performs no network access.
type Form struct {
	risk    models.RiskCategory
	horizon int
	income  float64
}

// NewForm creates a form with the default starting values
// (Moderate, 5 years, 10,00,000).
func NewForm() *Form {
	return &Form{
		risk:    models.RiskModerate,
		horizon: 5,
		income:  1000000,
	}
}

// SetRiskCategory updates the risk category. Unknown values are ignored.
func (f *Form) SetRiskCategory(r models.RiskCategory) {
	if r.Valid() {
		f.risk = r
	}
}

// SetHorizonYears updates the horizon, clamped to the 1-20 year range.
func (f *Form) SetHorizonYears(years int) {
	if years < models.MinHorizonYears {
		years = models.MinHorizonYears
	}
	if years > models.MaxHorizonYears {
		years = models.MaxHorizonYears
	}
	f.horizon = years
}

// SetIncome parses a raw income entry. If the entry is not a finite
// positive number the previous valid value is retained and no state
// change occurs.
func (f *Form) SetIncome(raw string) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return
	}
	f.income = v
}

// Profile returns the current field values as a profile snapshot.
func (f *Form) Profile() models.UserProfile {
	return models.UserProfile{
		RiskCategory: f.risk,
		HorizonYears: f.horizon,
		AnnualIncome: f.income,
	}
}

// Submit validates the captured fields and hands an immutable profile to
// the callback. The callback fires only when all three fields are valid.
func (f *Form) Submit(fn func(models.UserProfile)) error {
	p := f.Profile()
	if err := p.Validate(); err != nil {
		return errors.Join(ErrNotReady, err)
	}
	fn(p)
	return nil
}
