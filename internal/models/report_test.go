package models

import (
	"errors"
	"testing"
	"time"
)

func wireRecord() ReportRecord {
	return ReportRecord{
		ID:                    7,
		CreatedAt:             "2026-08-01T09:30:00Z",
		RiskAppetite:          "Aggressive",
		InvestmentHorizon:     12,
		IncomeLevel:           2400000,
		AssetAllocation:       `{"equity":70,"debt":20,"gold":5,"cash":5}`,
		PerformanceProjection: `{"year1":12,"year3":15,"year5":18}`,
		RiskAssessment:        `{"volatility":"High","drawdown":"20-30%","recoveryPeriod":"1-2 years"}`,
		UserID:                1,
	}
}

func TestDecodeReport_Success(t *testing.T) {
	r, err := DecodeReport(wireRecord())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.Source != SourceBackend {
		t.Errorf("Expected source=backend, got %s", r.Source)
	}
	if r.Allocation.Equity != 70 || r.Allocation.Cash != 5 {
		t.Errorf("Unexpected allocation: %+v", r.Allocation)
	}
	if r.Risk.RecoveryPeriod != "1-2 years" {
		t.Errorf("Unexpected recovery period: %q", r.Risk.RecoveryPeriod)
	}
	want := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	if !r.CreatedAt.Equal(want) {
		t.Errorf("Expected created_at %v, got %v", want, r.CreatedAt)
	}
}

func TestDecodeReport_MalformedSubDocument(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*ReportRecord)
	}{
		{"asset_allocation", func(r *ReportRecord) { r.AssetAllocation = "{broken" }},
		{"performance_projection", func(r *ReportRecord) { r.PerformanceProjection = "" }},
		{"risk_assessment", func(r *ReportRecord) { r.RiskAssessment = "[]" }},
	}
	for _, tc := range cases {
		rec := wireRecord()
		tc.mutate(&rec)
		_, err := DecodeReport(rec)
		if err == nil {
			t.Errorf("Expected error for malformed %s", tc.field)
			continue
		}
		var docErr *DocError
		if !errors.As(err, &docErr) {
			t.Errorf("Expected *DocError for %s, got %T", tc.field, err)
			continue
		}
		if docErr.Field != tc.field {
			t.Errorf("Expected field %s, got %s", tc.field, docErr.Field)
		}
	}
}

func TestDecodeReport_AllocationOutOfRange(t *testing.T) {
	rec := wireRecord()
	rec.AssetAllocation = `{"equity":130,"debt":-30,"gold":0,"cash":0}`

	_, err := DecodeReport(rec)
	var docErr *DocError
	if !errors.As(err, &docErr) {
		t.Fatalf("Expected *DocError, got %v", err)
	}
	if docErr.Field != "asset_allocation" {
		t.Errorf("Expected asset_allocation field, got %s", docErr.Field)
	}
}

func TestDecodeReport_SumBesides100Accepted(t *testing.T) {
	rec := wireRecord()
	rec.AssetAllocation = `{"equity":60,"debt":20,"gold":5,"cash":5}`

	r, err := DecodeReport(rec)
	if err != nil {
		t.Fatalf("Expected off-sum allocation to be accepted, got %v", err)
	}
	if r.Allocation.Sum() != 90 {
		t.Errorf("Expected sum 90, got %f", r.Allocation.Sum())
	}
}

func TestDecodeReport_MissingCreatedAtDefaultsToNow(t *testing.T) {
	rec := wireRecord()
	rec.CreatedAt = ""

	r, err := DecodeReport(rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.CreatedAt.IsZero() {
		t.Error("Expected created_at to default to the decode time")
	}
}
