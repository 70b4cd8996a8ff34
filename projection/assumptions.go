/*
assumptions.go - Input record and validation

PURPOSE:
  Assumptions is the immutable record of everything the projection needs:
  the salary schedule, the contribution rate shared by both tracks, the
  investment return, the horizon, and the pension benefit formula.

RATES:
  All rates are fractions, not percentages: 0.03 means 3%. The factory
  package handles the percent-denominated wire format.

VALIDATION:
  Validate() checks every field and returns an InvalidAssumptionsError
  listing all offending fields. Rates may be zero but never negative;
  year counts run 0..MaxPhaseYears per phase (zero is a degenerate but
  legal horizon). The projection never runs on invalid inputs.

SEE ALSO:
  - errors.go: FieldError / InvalidAssumptionsError
  - salary.go: How GrowthRate, StepRate, PromotionRate are applied
  - pension.go: BenefitFormula
*/
package projection

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ASSUMPTIONS - Immutable input record
// =============================================================================

type Assumptions struct {
	// StartingSalary is the annual wage in the first working year.
	StartingSalary decimal.Decimal

	// GrowthRate is the annual cost-of-living raise applied every year.
	GrowthRate decimal.Decimal

	// StepRate is an extra raise from salary-scale step progression,
	// applied at the end of working years 2 through 5. Zero disables it.
	StepRate decimal.Decimal

	// PromotionRate is the raise applied at the end of each year listed
	// in PromotionYears. Zero disables it.
	PromotionRate decimal.Decimal

	// PromotionYears lists the working years (1-based) in which a
	// promotion raise lands.
	PromotionYears []int

	// YearsWorking and YearsRetired define the horizon.
	YearsWorking int
	YearsRetired int

	// ContributionRate is the fraction of salary diverted each working
	// year - to the pension system on one track, to the personal account
	// on the other.
	ContributionRate decimal.Decimal

	// ReturnRate is the annual investment return of the personal account.
	ReturnRate decimal.Decimal

	// Benefit determines the flat annual pension payout in retirement.
	Benefit BenefitFormula

	// AnnualWithdrawal is the fixed amount drawn from the personal
	// account each retirement year. Zero means "match the pension
	// benefit", which keeps the two tracks comparable like-for-like.
	AnnualWithdrawal decimal.Decimal
}

// Horizon returns the total number of simulated years.
func (a Assumptions) Horizon() int {
	return a.YearsWorking + a.YearsRetired
}

// =============================================================================
// VALIDATION
// =============================================================================

// MaxPhaseYears caps each phase of the horizon. No human career or
// retirement approaches it, and it keeps a single request from asking
// for a multi-million-year simulation.
const MaxPhaseYears = 120

// Validate checks every field and reports all violations at once.
// Returns nil when the assumptions are safe to project.
func (a Assumptions) Validate() error {
	var fields []FieldError

	nonNegative := func(name string, v decimal.Decimal) {
		if v.IsNegative() {
			fields = append(fields, FieldError{Field: name, Message: "must not be negative"})
		}
	}

	nonNegative("starting_salary", a.StartingSalary)
	nonNegative("growth_rate", a.GrowthRate)
	nonNegative("step_rate", a.StepRate)
	nonNegative("promotion_rate", a.PromotionRate)
	nonNegative("contribution_rate", a.ContributionRate)
	nonNegative("return_rate", a.ReturnRate)
	nonNegative("annual_withdrawal", a.AnnualWithdrawal)

	yearsInRange := func(name string, v int) {
		switch {
		case v < 0:
			fields = append(fields, FieldError{Field: name, Message: "must not be negative"})
		case v > MaxPhaseYears:
			fields = append(fields, FieldError{Field: name, Message: fmt.Sprintf("must not exceed %d years", MaxPhaseYears)})
		}
	}
	yearsInRange("years_working", a.YearsWorking)
	yearsInRange("years_retired", a.YearsRetired)

	if a.ContributionRate.GreaterThan(decimal.NewFromInt(1)) {
		fields = append(fields, FieldError{Field: "contribution_rate", Message: "must not exceed 1 (100% of salary)"})
	}

	for _, y := range a.PromotionYears {
		if y < 1 || y > a.YearsWorking {
			fields = append(fields, FieldError{
				Field:   "promotion_years",
				Message: fmt.Sprintf("year %d falls outside the working years (1..%d)", y, a.YearsWorking),
			})
		}
	}

	fields = append(fields, a.Benefit.validate()...)

	if len(fields) > 0 {
		return &InvalidAssumptionsError{Fields: fields}
	}
	return nil
}
