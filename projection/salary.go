/*
salary.go - Wage schedule for the working years

PURPOSE:
  Computes the salary for every working year from the raise components:
  an annual cost-of-living adjustment, a step-progression raise early in
  the career, and promotion raises in chosen years.

TIMING:
  Raises land at the END of a working year and take effect the following
  year. With only a growth rate g, salary in working year k (1-based) is
  starting × (1+g)^(k-1).

STEP WINDOW:
  Step raises apply at the end of working years 2 through 5, modeling a
  salary scale climbed early in a career. The window is fixed; set
  StepRate to zero to disable it.
*/
package projection

import "github.com/shopspring/decimal"

// Step raises apply at the end of working years stepFirstYear..stepLastYear.
const (
	stepFirstYear = 2
	stepLastYear  = 5
)

// salarySchedule generates per-year wages from the raise components.
type salarySchedule struct {
	starting       decimal.Decimal
	growthRate     decimal.Decimal
	stepRate       decimal.Decimal
	promotionRate  decimal.Decimal
	promotionYears map[int]bool
}

func newSalarySchedule(a Assumptions) salarySchedule {
	promos := make(map[int]bool, len(a.PromotionYears))
	for _, y := range a.PromotionYears {
		promos[y] = true
	}
	return salarySchedule{
		starting:       a.StartingSalary,
		growthRate:     a.GrowthRate,
		stepRate:       a.StepRate,
		promotionRate:  a.PromotionRate,
		promotionYears: promos,
	}
}

// Wages returns the salary for each of the given working years, in order.
func (s salarySchedule) Wages(years int) []decimal.Decimal {
	if years <= 0 {
		return nil
	}

	one := decimal.NewFromInt(1)
	growth := one.Add(s.growthRate)
	step := one.Add(s.stepRate)
	promotion := one.Add(s.promotionRate)

	wages := make([]decimal.Decimal, years)
	wage := s.starting
	for year := 1; year <= years; year++ {
		wages[year-1] = wage

		// Raises for next year
		wage = wage.Mul(growth)
		if year >= stepFirstYear && year <= stepLastYear {
			wage = wage.Mul(step)
		}
		if s.promotionYears[year] {
			wage = wage.Mul(promotion)
		}
	}
	return wages
}
