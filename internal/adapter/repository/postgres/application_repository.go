package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"loan-applications-api/internal/domain"
)

const applicationColumns = `
	application_id,
	reference_number,
	product,
	status,
	requested_amount,
	term_months,
	repayment_frequency,
	purpose,
	applicant_first_name,
	applicant_last_name,
	applicant_date_of_birth,
	applicant_email,
	applicant_phone,
	applicant_annual_income,
	applicant_employment_status,
	created_at,
	updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.LoanApplication) error {
	const query = `
INSERT INTO loan_applications (
	application_id,
	reference_number,
	product,
	status,
	requested_amount,
	term_months,
	repayment_frequency,
	purpose,
	applicant_first_name,
	applicant_last_name,
	applicant_date_of_birth,
	applicant_email,
	applicant_phone,
	applicant_annual_income,
	applicant_employment_status,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		app.ApplicationID,
		app.ReferenceNumber,
		app.Product,
		app.Status,
		app.RequestedAmount,
		app.TermMonths,
		app.RepaymentFrequency,
		app.Purpose,
		app.Applicant.FirstName,
		app.Applicant.LastName,
		app.Applicant.DateOfBirth,
		app.Applicant.Email,
		app.Applicant.Phone,
		app.Applicant.AnnualIncome,
		app.Applicant.EmploymentStatus,
		app.CreatedAt,
		app.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create loan application: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (domain.LoanApplication, error) {
	query := `SELECT` + applicationColumns + ` FROM loan_applications WHERE application_id = $1`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoanApplication{}, domain.ErrRecordNotFound
		}
		return domain.LoanApplication{}, fmt.Errorf("get loan application: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.LoanApplication, error) {
	query := `SELECT` + applicationColumns + ` FROM loan_applications`

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Product != "" {
		args = append(args, filter.Product)
		conditions = append(conditions, fmt.Sprintf("product = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loan applications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LoanApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan application: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan applications: %w", err)
	}

	return out, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id string, patch domain.ApplicationPatch) (domain.LoanApplication, error) {
	query := `
UPDATE loan_applications SET
	requested_amount = COALESCE($2, requested_amount),
	term_months = COALESCE($3, term_months),
	repayment_frequency = COALESCE($4, repayment_frequency),
	updated_at = NOW()
WHERE application_id = $1
RETURNING` + applicationColumns

	var frequency *string
	if patch.RepaymentFrequency != nil {
		value := string(*patch.RepaymentFrequency)
		frequency = &value
	}

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id, patch.RequestedAmount, patch.TermMonths, frequency))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoanApplication{}, domain.ErrRecordNotFound
		}
		return domain.LoanApplication{}, fmt.Errorf("update loan application: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM loan_applications WHERE application_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loan application: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete loan application rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *ApplicationRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (domain.LoanApplication, error) {
	var app domain.LoanApplication
	if err := row.Scan(
		&app.ApplicationID,
		&app.ReferenceNumber,
		&app.Product,
		&app.Status,
		&app.RequestedAmount,
		&app.TermMonths,
		&app.RepaymentFrequency,
		&app.Purpose,
		&app.Applicant.FirstName,
		&app.Applicant.LastName,
		&app.Applicant.DateOfBirth,
		&app.Applicant.Email,
		&app.Applicant.Phone,
		&app.Applicant.AnnualIncome,
		&app.Applicant.EmploymentStatus,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return domain.LoanApplication{}, err
	}

	return app, nil
}
