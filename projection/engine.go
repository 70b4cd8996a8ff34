/*
engine.go - The year-by-year projection loop

PURPOSE:
  Runs the whole horizon in a single pass and produces one YearRecord per
  simulated year plus a Summary. This is the only algorithm in the system.

THE TWO TRACKS:
  Pension track:   contributions go to the pension system; in retirement
                   a flat annual benefit is paid. The track's value is the
                   cumulative benefits redeemed.
  Personal track:  the same contributions go to a self-directed account
                   that compounds at the return rate; in retirement a
                   fixed withdrawal is drawn and the remainder compounds.

RECURRENCES:
  Working year:    balance = balance × (1+r) + salary × c
  Retirement year: balance = (balance − withdrawal) × (1+r)

EXHAUSTION:
  The first retirement year in which the balance cannot cover the full
  withdrawal, the account is drained to zero and flagged exhausted. The
  balance is reported as zero from then on - never negative.

DETERMINISM:
  Pure function of Assumptions. Stateless, single-threaded, completes in
  microseconds; callers re-run it from scratch whenever an input changes.
*/
package projection

import "github.com/shopspring/decimal"

// Project validates the assumptions and runs the full horizon.
// It is the engine's single entry point.
func Project(a Assumptions) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	growthFactor := one.Add(a.ReturnRate)

	records := make([]YearRecord, 0, a.Horizon())

	var (
		balance            = decimal.Zero
		totalContributions = decimal.Zero
		finalSalary        = decimal.Zero
	)

	// --- Working phase ---
	wages := newSalarySchedule(a).Wages(a.YearsWorking)
	for year := 1; year <= a.YearsWorking; year++ {
		salary := wages[year-1]
		contribution := salary.Mul(a.ContributionRate)

		totalContributions = totalContributions.Add(contribution)
		balance = balance.Mul(growthFactor).Add(contribution)

		records = append(records, YearRecord{
			Index:              year,
			PhaseYear:          year,
			Phase:              PhaseWorking,
			Salary:             salary,
			Contribution:       contribution,
			Benefit:            decimal.Zero,
			CumulativeBenefits: decimal.Zero,
			Balance:            balance,
		})
		finalSalary = salary
	}

	// --- Retirement phase ---
	benefit := a.Benefit.AnnualBenefit(finalSalary, a.YearsWorking)
	withdrawal := a.AnnualWithdrawal
	if withdrawal.IsZero() {
		withdrawal = benefit
	}

	var (
		cumulativeBenefits = decimal.Zero
		exhaustedYear      *int
	)

	for year := 1; year <= a.YearsRetired; year++ {
		cumulativeBenefits = cumulativeBenefits.Add(benefit)

		if exhaustedYear == nil {
			if balance.LessThan(withdrawal) {
				// The account cannot cover a full withdrawal: take
				// what is left and flag exhaustion for this year.
				idx := a.YearsWorking + year
				exhaustedYear = &idx
				balance = decimal.Zero
			} else {
				balance = balance.Sub(withdrawal).Mul(growthFactor)
			}
		}

		records = append(records, YearRecord{
			Index:              a.YearsWorking + year,
			PhaseYear:          year,
			Phase:              PhaseRetired,
			Salary:             decimal.Zero,
			Contribution:       decimal.Zero,
			Benefit:            benefit,
			CumulativeBenefits: cumulativeBenefits,
			Balance:            balance,
			Exhausted:          exhaustedYear != nil,
		})
	}

	return &Result{
		Assumptions: a,
		Records:     records,
		Summary: Summary{
			TotalContributions: totalContributions,
			TotalBenefits:      cumulativeBenefits,
			FinalBalance:       balance,
			AnnualBenefit:      benefit,
			FinalSalary:        finalSalary,
			ExhaustedYear:      exhaustedYear,
		},
	}, nil
}
