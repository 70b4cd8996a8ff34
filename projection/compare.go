/*
compare.go - Interpreting a finished projection

PURPOSE:
  Turns a Result into the handful of judgments the calculator surfaces:
  which track came out ahead, and when the pension "paid for itself"
  (cumulative benefits overtaking total contributions).

VERDICT:
  Personal wins when the account sustained every withdrawal and still
  holds money at the end of the horizon - it matched the pension's income
  and left an estate on top. Pension wins when the account ran dry before
  the horizon ended. Even means the account landed at exactly zero.
*/
package projection

// =============================================================================
// VERDICT
// =============================================================================

type Verdict string

const (
	VerdictPension  Verdict = "pension"
	VerdictPersonal Verdict = "personal"
	VerdictEven     Verdict = "even"
)

// Comparison is the derived judgment over a finished projection.
type Comparison struct {
	Verdict Verdict

	// BreakEvenYear is the horizon index (1-based) of the first
	// retirement year in which cumulative pension benefits reach the
	// total contributions paid in. Nil if that never happens.
	BreakEvenYear *int
}

// Compare derives the verdict and break-even point from the records.
func (r *Result) Compare() Comparison {
	c := Comparison{Verdict: VerdictEven}

	switch {
	case r.Summary.Exhausted():
		c.Verdict = VerdictPension
	case r.Summary.FinalBalance.IsPositive():
		c.Verdict = VerdictPersonal
	}

	if r.Summary.TotalBenefits.IsZero() {
		return c
	}

	for _, rec := range r.Records {
		if rec.Phase != PhaseRetired {
			continue
		}
		if !rec.CumulativeBenefits.LessThan(r.Summary.TotalContributions) {
			idx := rec.Index
			c.BreakEvenYear = &idx
			break
		}
	}
	return c
}
