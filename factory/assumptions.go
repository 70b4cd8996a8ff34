/*
Package factory provides JSON to Go assumptions conversion.

PURPOSE:
  Converts the wire-format assumptions document into projection.Assumptions.
  The wire format is what the calculator page submits and what scenarios
  store: rates are percentages (5.5 means 5.5%), because that is how
  people type them, while the engine works in fractions.

JSON SCHEMA:
  {
    "starting_salary": 120000,
    "growth_rate_pct": 3.0,
    "step_rate_pct": 5.5,
    "promotion_rate_pct": 10.0,
    "promotion_years": [10, 20],
    "years_working": 30,
    "years_retired": 30,
    "contribution_rate_pct": 10.0,
    "return_rate_pct": 7.0,
    "benefit": {
      "mode": "flat",
      "annual_allowance": 70458.24
    }
  }

KEY FEATURES:
  - Percent -> fraction conversion via decimal (no float drift)
  - Sensible defaults (flat benefit mode when unset)
  - Validation happens in the engine; the factory only shapes data

USAGE:
  f := factory.NewAssumptionsFactory()
  assumptions, err := f.Parse(jsonString)

SEE ALSO:
  - presets.go: Built-in scenarios in the same format (YAML-embedded)
  - ../projection/assumptions.go: The engine-side record
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/pension-engine/projection"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// AssumptionsJSON is the wire representation of projection.Assumptions.
// Rates are percentages. Tagged for both JSON (API) and YAML (presets).
type AssumptionsJSON struct {
	StartingSalary      float64     `json:"starting_salary" yaml:"starting_salary"`
	GrowthRatePct       float64     `json:"growth_rate_pct" yaml:"growth_rate_pct"`
	StepRatePct         float64     `json:"step_rate_pct,omitempty" yaml:"step_rate_pct,omitempty"`
	PromotionRatePct    float64     `json:"promotion_rate_pct,omitempty" yaml:"promotion_rate_pct,omitempty"`
	PromotionYears      []int       `json:"promotion_years,omitempty" yaml:"promotion_years,omitempty"`
	YearsWorking        int         `json:"years_working" yaml:"years_working"`
	YearsRetired        int         `json:"years_retired" yaml:"years_retired"`
	ContributionRatePct float64     `json:"contribution_rate_pct" yaml:"contribution_rate_pct"`
	ReturnRatePct       float64     `json:"return_rate_pct" yaml:"return_rate_pct"`
	Benefit             BenefitJSON `json:"benefit" yaml:"benefit"`
	AnnualWithdrawal    float64     `json:"annual_withdrawal,omitempty" yaml:"annual_withdrawal,omitempty"`
}

// BenefitJSON represents the pension payout formula.
type BenefitJSON struct {
	Mode            string  `json:"mode,omitempty" yaml:"mode,omitempty"` // flat, final_salary
	AnnualAllowance float64 `json:"annual_allowance,omitempty" yaml:"annual_allowance,omitempty"`
	AccrualRatePct  float64 `json:"accrual_rate_pct,omitempty" yaml:"accrual_rate_pct,omitempty"`
}

// pct converts a percentage to a fractional decimal rate.
func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Div(decimal.NewFromInt(100))
}

// Assumptions converts the wire format into the engine-side record.
func (j AssumptionsJSON) Assumptions() projection.Assumptions {
	mode := projection.BenefitMode(j.Benefit.Mode)
	if mode == "" {
		mode = projection.BenefitFlat
	}

	return projection.Assumptions{
		StartingSalary:   decimal.NewFromFloat(j.StartingSalary),
		GrowthRate:       pct(j.GrowthRatePct),
		StepRate:         pct(j.StepRatePct),
		PromotionRate:    pct(j.PromotionRatePct),
		PromotionYears:   j.PromotionYears,
		YearsWorking:     j.YearsWorking,
		YearsRetired:     j.YearsRetired,
		ContributionRate: pct(j.ContributionRatePct),
		ReturnRate:       pct(j.ReturnRatePct),
		Benefit: projection.BenefitFormula{
			Mode:            mode,
			AnnualAllowance: decimal.NewFromFloat(j.Benefit.AnnualAllowance),
			AccrualRate:     pct(j.Benefit.AccrualRatePct),
		},
		AnnualWithdrawal: decimal.NewFromFloat(j.AnnualWithdrawal),
	}
}

// =============================================================================
// ASSUMPTIONS FACTORY
// =============================================================================

// AssumptionsFactory converts JSON assumption documents to engine records.
type AssumptionsFactory struct{}

// NewAssumptionsFactory creates a new assumptions factory.
func NewAssumptionsFactory() *AssumptionsFactory {
	return &AssumptionsFactory{}
}

// Parse unmarshals an assumptions document and validates it.
func (f *AssumptionsFactory) Parse(configJSON string) (projection.Assumptions, error) {
	doc, err := f.ParseDocument(configJSON)
	if err != nil {
		return projection.Assumptions{}, err
	}

	a := doc.Assumptions()
	if err := a.Validate(); err != nil {
		return projection.Assumptions{}, err
	}
	return a, nil
}

// ParseDocument unmarshals without validating, for round-tripping stored
// scenarios back to clients.
func (f *AssumptionsFactory) ParseDocument(configJSON string) (AssumptionsJSON, error) {
	var doc AssumptionsJSON
	if err := json.Unmarshal([]byte(configJSON), &doc); err != nil {
		return AssumptionsJSON{}, fmt.Errorf("malformed assumptions document: %w", err)
	}
	return doc, nil
}
