package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"loan-applications-api/internal/domain"
)

const (
	recordKeyPrefix = "loan:application:"
	orderKey        = "loan:applications:order"
)

// NewClient builds a go-redis client with conservative timeouts.
func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
}

// ApplicationRepository stores each application as a JSON blob and keeps a
// separate list of ids so List preserves insertion order.
type ApplicationRepository struct {
	client *goredis.Client
}

func NewApplicationRepository(client *goredis.Client) *ApplicationRepository {
	return &ApplicationRepository{client: client}
}

type applicationRecord struct {
	ApplicationID      string    `json:"applicationId"`
	ReferenceNumber    string    `json:"referenceNumber"`
	Product            string    `json:"product"`
	Status             string    `json:"status"`
	RequestedAmount    float64   `json:"requestedAmount"`
	TermMonths         int       `json:"termMonths"`
	RepaymentFrequency string    `json:"repaymentFrequency"`
	Purpose            string    `json:"purpose"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	DateOfBirth        string    `json:"dateOfBirth"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	AnnualIncome       float64   `json:"annualIncome"`
	EmploymentStatus   string    `json:"employmentStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toRecord(app domain.LoanApplication) applicationRecord {
	return applicationRecord{
		ApplicationID:      app.ApplicationID,
		ReferenceNumber:    app.ReferenceNumber,
		Product:            string(app.Product),
		Status:             string(app.Status),
		RequestedAmount:    app.RequestedAmount,
		TermMonths:         app.TermMonths,
		RepaymentFrequency: string(app.RepaymentFrequency),
		Purpose:            app.Purpose,
		FirstName:          app.Applicant.FirstName,
		LastName:           app.Applicant.LastName,
		DateOfBirth:        app.Applicant.DateOfBirth,
		Email:              app.Applicant.Email,
		Phone:              app.Applicant.Phone,
		AnnualIncome:       app.Applicant.AnnualIncome,
		EmploymentStatus:   app.Applicant.EmploymentStatus,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
	}
}

func (r applicationRecord) toDomain() domain.LoanApplication {
	return domain.LoanApplication{
		ApplicationID:      r.ApplicationID,
		ReferenceNumber:    r.ReferenceNumber,
		Product:            domain.Product(r.Product),
		Status:             domain.Status(r.Status),
		RequestedAmount:    r.RequestedAmount,
		TermMonths:         r.TermMonths,
		RepaymentFrequency: domain.RepaymentFrequency(r.RepaymentFrequency),
		Purpose:            r.Purpose,
		Applicant: domain.Applicant{
			FirstName:        r.FirstName,
			LastName:         r.LastName,
			DateOfBirth:      r.DateOfBirth,
			Email:            r.Email,
			Phone:            r.Phone,
			AnnualIncome:     r.AnnualIncome,
			EmploymentStatus: r.EmploymentStatus,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.LoanApplication) error {
	payload, err := json.Marshal(toRecord(app))
	if err != nil {
		return fmt.Errorf("marshal loan application: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, recordKey(app.ApplicationID), payload, 0)
	pipe.RPush(ctx, orderKey, app.ApplicationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store loan application: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (domain.LoanApplication, error) {
	raw, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.LoanApplication{}, domain.ErrRecordNotFound
		}
		return domain.LoanApplication{}, fmt.Errorf("get loan application: %w", err)
	}

	var record applicationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.LoanApplication{}, fmt.Errorf("unmarshal loan application: %w", err)
	}

	return record.toDomain(), nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.LoanApplication, error) {
	ids, err := r.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list loan application ids: %w", err)
	}

	out := make([]domain.LoanApplication, 0, len(ids))
	for _, id := range ids {
		app, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if filter.Matches(app) {
			out = append(out, app)
		}
	}

	return out, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id string, patch domain.ApplicationPatch) (domain.LoanApplication, error) {
	app, err := r.Get(ctx, id)
	if err != nil {
		return domain.LoanApplication{}, err
	}

	app.ApplyPatch(patch, time.Now().UTC())

	payload, err := json.Marshal(toRecord(app))
	if err != nil {
		return domain.LoanApplication{}, fmt.Errorf("marshal loan application: %w", err)
	}
	if err := r.client.Set(ctx, recordKey(id), payload, 0).Err(); err != nil {
		return domain.LoanApplication{}, fmt.Errorf("store loan application: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, recordKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete loan application: %w", err)
	}
	if removed == 0 {
		return domain.ErrRecordNotFound
	}

	if err := r.client.LRem(ctx, orderKey, 1, id).Err(); err != nil {
		return fmt.Errorf("remove loan application from order index: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
