package memory

import (
	"context"
	"sync"
	"time"

	"loan-applications-api/internal/domain"
)

// ApplicationRepository is the default store: a mutex-guarded map plus an
// insertion-order index so List stays deterministic. The lock is held only
// for map operations, so requests touching different ids never wait on
// anything slower than that; writes to the same id serialize, last writer
// wins.
type ApplicationRepository struct {
	mu    sync.RWMutex
	items map[string]domain.LoanApplication
	order []string
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{items: make(map[string]domain.LoanApplication)}
}

func (r *ApplicationRepository) Create(_ context.Context, app domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[app.ApplicationID]; !exists {
		r.order = append(r.order, app.ApplicationID)
	}
	r.items[app.ApplicationID] = app
	return nil
}

func (r *ApplicationRepository) Get(_ context.Context, id string) (domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.items[id]
	if !ok {
		return domain.LoanApplication{}, domain.ErrRecordNotFound
	}
	return app, nil
}

func (r *ApplicationRepository) List(_ context.Context, filter domain.ApplicationFilter) ([]domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LoanApplication, 0, len(r.order))
	for _, id := range r.order {
		app, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.Matches(app) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *ApplicationRepository) Update(_ context.Context, id string, patch domain.ApplicationPatch) (domain.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.items[id]
	if !ok {
		return domain.LoanApplication{}, domain.ErrRecordNotFound
	}

	app.ApplyPatch(patch, time.Now().UTC())
	r.items[id] = app
	return app, nil
}

func (r *ApplicationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ApplicationRepository) Ping(_ context.Context) error {
	return nil
}
