/*
pension.go - Defined-benefit payout formulas

PURPOSE:
  Determines the flat annual amount the pension pays in every retirement
  year. Two formulas are supported:

  BenefitFlat:
    A fixed annual allowance, taken straight from the inputs. This is how
    most people know their number - "my pension pays $X a year".

  BenefitFinalSalary:
    accrual rate × years of service × final working salary. This is the
    classic defined-benefit formula (e.g., 2% × 30 years × $80,000 =
    $48,000/year).

SEE ALSO:
  - engine.go: Applies the benefit in the retirement loop
*/
package projection

import "github.com/shopspring/decimal"

// =============================================================================
// BENEFIT FORMULA
// =============================================================================

type BenefitMode string

const (
	BenefitFlat        BenefitMode = "flat"
	BenefitFinalSalary BenefitMode = "final_salary"
)

type BenefitFormula struct {
	Mode BenefitMode

	// AnnualAllowance is the fixed yearly payout for BenefitFlat.
	AnnualAllowance decimal.Decimal

	// AccrualRate is the per-service-year fraction of final salary for
	// BenefitFinalSalary (e.g., 0.02 for a 2% scheme).
	AccrualRate decimal.Decimal
}

// AnnualBenefit returns the flat yearly payout for the retirement phase.
func (f BenefitFormula) AnnualBenefit(finalSalary decimal.Decimal, serviceYears int) decimal.Decimal {
	switch f.Mode {
	case BenefitFinalSalary:
		return f.AccrualRate.Mul(decimal.NewFromInt(int64(serviceYears))).Mul(finalSalary)
	default: // BenefitFlat or unset
		return f.AnnualAllowance
	}
}

func (f BenefitFormula) validate() []FieldError {
	var fields []FieldError

	switch f.Mode {
	case BenefitFlat, BenefitFinalSalary, "":
	default:
		fields = append(fields, FieldError{
			Field:   "benefit.mode",
			Message: "must be 'flat' or 'final_salary'",
		})
	}

	if f.AnnualAllowance.IsNegative() {
		fields = append(fields, FieldError{Field: "benefit.annual_allowance", Message: "must not be negative"})
	}
	if f.AccrualRate.IsNegative() {
		fields = append(fields, FieldError{Field: "benefit.accrual_rate", Message: "must not be negative"})
	}
	return fields
}
