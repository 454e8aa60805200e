package domain

import "github.com/shopspring/decimal"

// MaxDebtToIncomeRatio is the affordability ceiling: the requested amount may
// not exceed nine times the declared annual income.
const MaxDebtToIncomeRatio = 9

// AffordabilityOK reports whether the requested amount passes the
// debt-to-income check. Income is floored at 1 so a zero-income applicant is
// evaluated against the raw requested amount instead of dividing by zero.
// Runs only after presence and boundary validation, creation time only.
func AffordabilityOK(requestedAmount, annualIncome float64) bool {
	income := decimal.NewFromFloat(annualIncome)
	if income.LessThan(decimal.NewFromInt(1)) {
		income = decimal.NewFromInt(1)
	}
	ratio := decimal.NewFromFloat(requestedAmount).Div(income)
	return ratio.LessThanOrEqual(decimal.NewFromInt(MaxDebtToIncomeRatio))
}
