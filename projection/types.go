/*
Package projection provides the retirement projection engine.

PURPOSE:
  This package contains the types and the single algorithm at the heart of
  the calculator: a year-by-year projection comparing a defined-benefit
  pension against a self-directed investment account funded with the same
  contributions.

KEY CONCEPTS IN THIS FILE (types.go):
  - Phase: Which half of the horizon a year belongs to (working/retired)
  - YearRecord: One immutable entry per simulated year
  - Summary: Aggregate totals for a completed projection
  - Result: Ordered YearRecords plus Summary

DESIGN PRINCIPLES:
  1. Purity: Project() is a pure function; nothing is persisted between runs
  2. Precision: Uses decimal.Decimal to avoid floating-point drift over
     decades of compounding
  3. Honesty: A depleted account is flagged as exhausted, never reported
     with a negative balance

USAGE:
  result, err := projection.Project(assumptions)
  if err != nil {
      // invalid inputs, see errors.go
  }
  for _, rec := range result.Records {
      fmt.Println(rec.Label(), rec.Balance)
  }

SEE ALSO:
  - assumptions.go: Input record and validation
  - engine.go: The projection loop
  - salary.go: Wage schedule (COLA, steps, promotions)
  - pension.go: Benefit formulas
*/
package projection

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PHASE - Which half of the horizon a year belongs to
// =============================================================================

type Phase string

const (
	PhaseWorking Phase = "working"
	PhaseRetired Phase = "retired"
)

// =============================================================================
// YEAR RECORD - One entry per simulated year
// =============================================================================

// YearRecord captures the state of both tracks after one simulated year.
// Records are produced fresh on every run; they are never mutated.
type YearRecord struct {
	// Index is 1-based across the whole horizon (1..working+retired).
	Index int

	// PhaseYear is 1-based within the phase (working year 3 = W3).
	PhaseYear int

	Phase Phase

	// Salary for the year. Zero during retirement.
	Salary decimal.Decimal

	// Contribution diverted from salary this year. Zero during retirement.
	Contribution decimal.Decimal

	// Benefit paid by the pension this year. Zero while working.
	Benefit decimal.Decimal

	// CumulativeBenefits is the pension track: total benefits paid so far.
	CumulativeBenefits decimal.Decimal

	// Balance is the personal track: account balance after this year's
	// contribution or withdrawal and growth. Never negative.
	Balance decimal.Decimal

	// Exhausted is true once the personal account could not cover a
	// full withdrawal. It stays true for the rest of the horizon.
	Exhausted bool
}

// Label returns the chart-friendly year label: W1..Wn while working,
// R1..Rm in retirement.
func (r YearRecord) Label() string {
	if r.Phase == PhaseWorking {
		return fmt.Sprintf("W%d", r.PhaseYear)
	}
	return fmt.Sprintf("R%d", r.PhaseYear)
}

// =============================================================================
// SUMMARY - Aggregate totals for a completed projection
// =============================================================================

type Summary struct {
	// TotalContributions is everything diverted from salary over the
	// working years (the "pension tax paid" in the pension track, or the
	// total invested in the personal track - same number by construction).
	TotalContributions decimal.Decimal

	// TotalBenefits is everything the pension paid out in retirement.
	TotalBenefits decimal.Decimal

	// FinalBalance is the personal account balance at the end of the
	// horizon. Zero if the account was exhausted.
	FinalBalance decimal.Decimal

	// AnnualBenefit is the flat yearly pension payout used in retirement.
	AnnualBenefit decimal.Decimal

	// FinalSalary is the salary in the last working year (zero if none).
	FinalSalary decimal.Decimal

	// ExhaustedYear is the horizon index (1-based) of the first year the
	// personal account could not cover a full withdrawal. Nil if the
	// account survived the whole horizon.
	ExhaustedYear *int
}

// Exhausted reports whether the personal account ran dry.
func (s Summary) Exhausted() bool {
	return s.ExhaustedYear != nil
}

// =============================================================================
// RESULT - Ordered records plus summary
// =============================================================================

type Result struct {
	Assumptions Assumptions
	Records     []YearRecord
	Summary     Summary
}
