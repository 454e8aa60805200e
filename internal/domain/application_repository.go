package domain

import "context"

// ApplicationFilter is an exact-match conjunction; zero-valued fields impose
// no constraint.
type ApplicationFilter struct {
	Status  Status
	Product Product
}

// Matches reports whether app satisfies every provided filter field.
func (f ApplicationFilter) Matches(app LoanApplication) bool {
	if f.Status != "" && app.Status != f.Status {
		return false
	}
	if f.Product != "" && app.Product != f.Product {
		return false
	}
	return true
}

// ApplicationPatch carries the allow-listed mutable fields of a partial
// update. Nil means "not provided"; a pointer to a zero value is applied.
type ApplicationPatch struct {
	RequestedAmount    *float64
	TermMonths         *int
	RepaymentFrequency *RepaymentFrequency
}

// ApplicationRepository is the sole owner of LoanApplication lifecycle state.
// List returns applications in insertion order. Get, Update and Delete return
// ErrRecordNotFound for unknown ids.
type ApplicationRepository interface {
	Create(ctx context.Context, app LoanApplication) error
	Get(ctx context.Context, id string) (LoanApplication, error)
	List(ctx context.Context, filter ApplicationFilter) ([]LoanApplication, error)
	Update(ctx context.Context, id string, patch ApplicationPatch) (LoanApplication, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
