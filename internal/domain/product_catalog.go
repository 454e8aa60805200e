package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownProduct = errors.New("unknown product")

// Limits are the inclusive requested-amount bounds for a product.
type Limits struct {
	Min float64
	Max float64
}

var productLimits = map[Product]Limits{
	ProductHomeLoan:     {Min: 1_000, Max: 3_000_000},
	ProductPersonalLoan: {Min: 1_000, Max: 50_000},
	ProductAutoLoan:     {Min: 1_000, Max: 150_000},
	ProductBusinessLoan: {Min: 1_000, Max: 500_000},
}

// LimitsFor resolves the static per-product amount bounds. Unknown products
// yield ErrUnknownProduct, which callers report as a validation error.
func LimitsFor(product Product) (Limits, error) {
	limits, ok := productLimits[product]
	if !ok {
		return Limits{}, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}
	return limits, nil
}
