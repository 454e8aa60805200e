package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/adapter/repository/memory"
	"loan-applications-api/internal/apierror"
)

func newLoanService() *LoanService {
	return NewLoanService(memory.NewApplicationRepository())
}

func createRequest() models.CreateLoanRequest {
	return models.CreateLoanRequest{
		Product:            "HOME_LOAN",
		RequestedAmount:    500000,
		TermMonths:         360,
		RepaymentFrequency: "MONTHLY",
		Purpose:            "First home purchase",
		Applicant: models.ApplicantPayload{
			FirstName:        "Alex",
			LastName:         "Martinez",
			DateOfBirth:      "1990-04-12",
			Email:            "alex.martinez@example.com",
			AnnualIncome:     95000,
			EmploymentStatus: "EMPLOYED_FULL_TIME",
		},
	}
}

func TestCreateSuccess(t *testing.T) {
	svc := newLoanService()

	resp, apiErr := svc.Create(context.Background(), createRequest())
	require.Nil(t, apiErr)

	assert.NotEmpty(t, resp.ApplicationID)
	assert.Regexp(t, `^LN-\d{8}-[0-9A-Z]{4}$`, resp.ReferenceNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, "/v1/loans/"+resp.ApplicationID, resp.Links.Self.Href)
}

func TestCreateMissingFields(t *testing.T) {
	svc := newLoanService()

	req := createRequest()
	req.Applicant.Email = ""
	req.RequestedAmount = 0

	_, apiErr := svc.Create(context.Background(), req)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, apierror.CodeValidationError, apiErr.Code)
	assert.Equal(t, "One or more required fields are missing", apiErr.Message)
	assert.Equal(t, []string{"email is required"}, apiErr.Details["applicant.email"])
	assert.Equal(t, []string{"requestedAmount is required"}, apiErr.Details["requestedAmount"])
}

func TestCreateUnknownProduct(t *testing.T) {
	svc := newLoanService()

	req := createRequest()
	req.Product = "PAYDAY_LOAN"

	_, apiErr := svc.Create(context.Background(), req)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid product type", apiErr.Message)
	assert.Equal(t, []string{"invalid value"}, apiErr.Details["product"])
}

func TestCreateAmountBounds(t *testing.T) {
	tests := []struct {
		name    string
		product string
		amount  float64
		income  float64
		status  int
		message string
	}{
		{"below minimum", "PERSONAL_LOAN", 999, 95000, http.StatusUnprocessableEntity, "requestedAmount must be at least 1000"},
		{"at minimum", "PERSONAL_LOAN", 1000, 95000, http.StatusCreated, ""},
		{"at maximum", "PERSONAL_LOAN", 50000, 95000, http.StatusCreated, ""},
		{"above maximum", "PERSONAL_LOAN", 50001, 95000, http.StatusUnprocessableEntity, "requestedAmount exceeds product maximum of 50000"},
		{"home loan maximum", "HOME_LOAN", 3000000, 400000, http.StatusCreated, ""},
		{"home loan above maximum", "HOME_LOAN", 3000001, 400000, http.StatusUnprocessableEntity, "requestedAmount exceeds product maximum of 3000000"},
		{"auto loan above maximum", "AUTO_LOAN", 150001, 95000, http.StatusUnprocessableEntity, "requestedAmount exceeds product maximum of 150000"},
		{"business loan above maximum", "BUSINESS_LOAN", 500001, 95000, http.StatusUnprocessableEntity, "requestedAmount exceeds product maximum of 500000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newLoanService()

			req := createRequest()
			req.Product = tc.product
			req.RequestedAmount = tc.amount
			req.Applicant.AnnualIncome = tc.income

			_, apiErr := svc.Create(context.Background(), req)
			if tc.status == http.StatusCreated {
				assert.Nil(t, apiErr)
				return
			}

			require.NotNil(t, apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, apierror.CodeValidationError, apiErr.Code)
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestCreateAffordability(t *testing.T) {
	svc := newLoanService()

	req := createRequest()
	req.RequestedAmount = 850000
	req.Applicant.AnnualIncome = 28000

	_, apiErr := svc.Create(context.Background(), req)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, apierror.CodeAffordabilityFailed, apiErr.Code)
	assert.Equal(t, "Requested amount exceeds affordability threshold based on declared income", apiErr.Message)
}

func TestCreateBoundsCheckedBeforeAffordability(t *testing.T) {
	svc := newLoanService()

	// Fails both checks; boundary wins because it runs first.
	req := createRequest()
	req.Product = "PERSONAL_LOAN"
	req.RequestedAmount = 50001
	req.Applicant.AnnualIncome = 1000

	_, apiErr := svc.Create(context.Background(), req)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierror.CodeValidationError, apiErr.Code)
}

func TestGetNotFound(t *testing.T) {
	svc := newLoanService()

	_, apiErr := svc.Get(context.Background(), "missing-id")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "No application found with id missing-id", apiErr.Message)
}

func TestGetRoundTrip(t *testing.T) {
	svc := newLoanService()

	created, apiErr := svc.Create(context.Background(), createRequest())
	require.Nil(t, apiErr)

	got, apiErr := svc.Get(context.Background(), created.ApplicationID)
	require.Nil(t, apiErr)
	assert.Equal(t, created, got)
}

func TestListPagination(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		req := createRequest()
		req.Product = "PERSONAL_LOAN"
		req.RequestedAmount = 15000
		_, apiErr := svc.Create(ctx, req)
		require.Nil(t, apiErr)
	}

	resp, apiErr := svc.List(ctx, models.ListLoansQuery{Page: 2, PageSize: 10})
	require.Nil(t, apiErr)

	assert.Len(t, resp.Data, 10)
	assert.Equal(t, 25, resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, "/v1/loans?page=2&pageSize=10", resp.Links.Self.Href)
	require.NotNil(t, resp.Links.Next)
	assert.Equal(t, "/v1/loans?page=3&pageSize=10", resp.Links.Next.Href)
	require.NotNil(t, resp.Links.Prev)
	assert.Equal(t, "/v1/loans?page=1&pageSize=10", resp.Links.Prev.Href)
}

func TestListEmptyStore(t *testing.T) {
	svc := newLoanService()

	resp, apiErr := svc.List(context.Background(), models.ListLoansQuery{Page: 1, PageSize: 20})
	require.Nil(t, apiErr)

	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.Nil(t, resp.Links.Next)
	assert.Nil(t, resp.Links.Prev)
}

func TestListFilterByProduct(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	_, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	personal := createRequest()
	personal.Product = "PERSONAL_LOAN"
	personal.RequestedAmount = 15000
	_, apiErr = svc.Create(ctx, personal)
	require.Nil(t, apiErr)

	resp, apiErr := svc.List(ctx, models.ListLoansQuery{Product: "PERSONAL_LOAN", Page: 1, PageSize: 20})
	require.Nil(t, apiErr)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "PERSONAL_LOAN", resp.Data[0].Product)
}

func TestListPageBeyondTotal(t *testing.T) {
	svc := newLoanService()

	_, apiErr := svc.Create(context.Background(), createRequest())
	require.Nil(t, apiErr)

	resp, apiErr := svc.List(context.Background(), models.ListLoansQuery{Page: 9, PageSize: 20})
	require.Nil(t, apiErr)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 9, resp.Pagination.Page)
	require.NotNil(t, resp.Links.Prev)
}

func TestUpdateAllowListedFields(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	amount := 420000.0
	frequency := "FORTNIGHTLY"
	updated, apiErr := svc.Update(ctx, created.ApplicationID, models.UpdateLoanRequest{
		RequestedAmount:    &amount,
		RepaymentFrequency: &frequency,
	})
	require.Nil(t, apiErr)

	assert.Equal(t, amount, updated.RequestedAmount)
	assert.Equal(t, "FORTNIGHTLY", updated.RepaymentFrequency)
	assert.Equal(t, created.TermMonths, updated.TermMonths)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateSkipsBoundRecheck(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	// 5,000,000 exceeds the HOME_LOAN creation maximum; updates do not
	// re-run boundary validation.
	amount := 5000000.0
	updated, apiErr := svc.Update(ctx, created.ApplicationID, models.UpdateLoanRequest{RequestedAmount: &amount})
	require.Nil(t, apiErr)
	assert.Equal(t, amount, updated.RequestedAmount)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newLoanService()

	amount := 1000.0
	_, apiErr := svc.Update(context.Background(), "missing-id", models.UpdateLoanRequest{RequestedAmount: &amount})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestWithdraw(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	require.Nil(t, svc.Withdraw(ctx, created.ApplicationID))

	_, apiErr = svc.Get(ctx, created.ApplicationID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestWithdrawNotFound(t *testing.T) {
	svc := newLoanService()

	apiErr := svc.Withdraw(context.Background(), "missing-id")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestDecision(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	decision, apiErr := svc.Decision(ctx, created.ApplicationID)
	require.Nil(t, apiErr)

	assert.Equal(t, created.ApplicationID, decision.ApplicationID)
	assert.Equal(t, "APPROVED", decision.Status)
	assert.Equal(t, 500000.0, decision.ApprovedAmount)
	assert.Equal(t, 6.49, decision.InterestRate)
	assert.Equal(t, 6.71, decision.ComparisonRate)
	assert.Equal(t, 2500.0, decision.MonthlyRepayment)
	assert.NotEmpty(t, decision.DecidedAt)
}

func TestDecisionDoesNotTransitionStatus(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, createRequest())
	require.Nil(t, apiErr)

	_, apiErr = svc.Decision(ctx, created.ApplicationID)
	require.Nil(t, apiErr)

	got, apiErr := svc.Get(ctx, created.ApplicationID)
	require.Nil(t, apiErr)
	assert.Equal(t, "DRAFT", got.Status)
}

func TestDecisionRoundsRepayment(t *testing.T) {
	svc := newLoanService()
	ctx := context.Background()

	req := createRequest()
	req.Product = "PERSONAL_LOAN"
	req.RequestedAmount = 15555
	req.Applicant.AnnualIncome = 95000
	created, apiErr := svc.Create(ctx, req)
	require.Nil(t, apiErr)

	decision, apiErr := svc.Decision(ctx, created.ApplicationID)
	require.Nil(t, apiErr)
	assert.Equal(t, 77.78, decision.MonthlyRepayment)
}
