/*
narrative.go - Short textual interpretation of a projection

PURPOSE:
  Turns the numbers into a couple of plain-language sentences shown under
  the chart. Pure presentation glue; all judgments come from
  projection.Compare().
*/
package api

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/pension-engine/projection"
)

// formatMoney renders a decimal as $1,234,567 (rounded to whole dollars).
func formatMoney(d decimal.Decimal) string {
	whole := d.Round(0).IntPart()
	negative := whole < 0
	if negative {
		whole = -whole
	}

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if negative {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// buildNarrative writes the two-or-three sentence interpretation.
func buildNarrative(result *projection.Result, c projection.Comparison) string {
	s := result.Summary
	a := result.Assumptions

	var parts []string

	parts = append(parts, fmt.Sprintf(
		"Over %d working years you contribute %s; the pension then pays %s per year for %d years, %s in total.",
		a.YearsWorking, formatMoney(s.TotalContributions),
		formatMoney(s.AnnualBenefit), a.YearsRetired, formatMoney(s.TotalBenefits)))

	if s.Exhausted() {
		parts = append(parts, fmt.Sprintf(
			"Investing the same contributions yourself, the fund is exhausted in year %d of the horizon - the pension's guaranteed income wins under these assumptions.",
			*s.ExhaustedYear))
	} else if s.FinalBalance.IsPositive() {
		parts = append(parts, fmt.Sprintf(
			"Investing the same contributions yourself sustains the same income and still ends with %s - more flexibility and an estate to pass on.",
			formatMoney(s.FinalBalance)))
	} else {
		parts = append(parts, "Investing the same contributions yourself lands at exactly zero - a dead heat under these assumptions.")
	}

	if c.BreakEvenYear != nil {
		parts = append(parts, fmt.Sprintf(
			"The pension pays back everything you put in by year %d of the horizon.", *c.BreakEvenYear))
	}

	return strings.Join(parts, " ")
}
