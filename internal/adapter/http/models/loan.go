package models

import (
	"fmt"
	"strings"
	"time"

	"loan-applications-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

type ApplicantPayload struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	DateOfBirth      string  `json:"dateOfBirth"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	AnnualIncome     float64 `json:"annualIncome"`
	EmploymentStatus string  `json:"employmentStatus"`
}

type CreateLoanRequest struct {
	Product            string           `json:"product"`
	RequestedAmount    float64          `json:"requestedAmount"`
	TermMonths         int              `json:"termMonths"`
	RepaymentFrequency string           `json:"repaymentFrequency"`
	Purpose            string           `json:"purpose"`
	Applicant          ApplicantPayload `json:"applicant"`
}

// Validate checks mandatory-field presence only. A zero number or blank
// string counts as missing. Keys are dotted paths into the payload; each
// message names the leaf field.
func (r CreateLoanRequest) Validate() map[string][]string {
	errs := map[string][]string{}

	requireString(errs, "product", r.Product)
	requireNumber(errs, "requestedAmount", r.RequestedAmount)
	if r.TermMonths == 0 {
		errs["termMonths"] = []string{"termMonths is required"}
	}
	requireString(errs, "repaymentFrequency", r.RepaymentFrequency)

	requireString(errs, "applicant.email", r.Applicant.Email)
	requireString(errs, "applicant.firstName", r.Applicant.FirstName)
	requireString(errs, "applicant.lastName", r.Applicant.LastName)
	requireString(errs, "applicant.dateOfBirth", r.Applicant.DateOfBirth)
	requireNumber(errs, "applicant.annualIncome", r.Applicant.AnnualIncome)
	requireString(errs, "applicant.employmentStatus", r.Applicant.EmploymentStatus)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func requireString(errs map[string][]string, path, value string) {
	if strings.TrimSpace(value) == "" {
		errs[path] = []string{leafField(path) + " is required"}
	}
}

func requireNumber(errs map[string][]string, path string, value float64) {
	if value == 0 {
		errs[path] = []string{leafField(path) + " is required"}
	}
}

func leafField(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// ToDomain mints identifiers and stamps both timestamps with now. New
// applications always start as DRAFT.
func (r CreateLoanRequest) ToDomain(now time.Time) domain.LoanApplication {
	return domain.LoanApplication{
		ApplicationID:      domain.NewApplicationID(),
		ReferenceNumber:    domain.NewReferenceNumber(now),
		Product:            domain.Product(r.Product),
		Status:             domain.StatusDraft,
		RequestedAmount:    r.RequestedAmount,
		TermMonths:         r.TermMonths,
		RepaymentFrequency: domain.RepaymentFrequency(r.RepaymentFrequency),
		Purpose:            r.Purpose,
		Applicant: domain.Applicant{
			FirstName:        r.Applicant.FirstName,
			LastName:         r.Applicant.LastName,
			DateOfBirth:      r.Applicant.DateOfBirth,
			Email:            r.Applicant.Email,
			Phone:            r.Applicant.Phone,
			AnnualIncome:     r.Applicant.AnnualIncome,
			EmploymentStatus: r.Applicant.EmploymentStatus,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateLoanRequest carries the allow-listed mutable fields. Absent fields
// stay nil; a field present with a zero value is still applied.
type UpdateLoanRequest struct {
	RequestedAmount    *float64 `json:"requestedAmount"`
	TermMonths         *int     `json:"termMonths"`
	RepaymentFrequency *string  `json:"repaymentFrequency"`
}

func (r UpdateLoanRequest) ToPatch() domain.ApplicationPatch {
	patch := domain.ApplicationPatch{
		RequestedAmount: r.RequestedAmount,
		TermMonths:      r.TermMonths,
	}
	if r.RepaymentFrequency != nil {
		frequency := domain.RepaymentFrequency(*r.RepaymentFrequency)
		patch.RepaymentFrequency = &frequency
	}
	return patch
}

type Link struct {
	Href string `json:"href"`
}

type LoanLinks struct {
	Self     Link  `json:"self"`
	Decision *Link `json:"decision,omitempty"`
}

type LoanApplicationResponse struct {
	ApplicationID      string           `json:"applicationId"`
	ReferenceNumber    string           `json:"referenceNumber"`
	Product            string           `json:"product"`
	Status             string           `json:"status"`
	RequestedAmount    float64          `json:"requestedAmount"`
	TermMonths         int              `json:"termMonths"`
	RepaymentFrequency string           `json:"repaymentFrequency"`
	Purpose            string           `json:"purpose"`
	Applicant          ApplicantPayload `json:"applicant"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
	Links              LoanLinks        `json:"_links"`
}

func NewLoanApplicationResponse(app domain.LoanApplication) LoanApplicationResponse {
	self := fmt.Sprintf("/v1/loans/%s", app.ApplicationID)
	return LoanApplicationResponse{
		ApplicationID:      app.ApplicationID,
		ReferenceNumber:    app.ReferenceNumber,
		Product:            string(app.Product),
		Status:             string(app.Status),
		RequestedAmount:    app.RequestedAmount,
		TermMonths:         app.TermMonths,
		RepaymentFrequency: string(app.RepaymentFrequency),
		Purpose:            app.Purpose,
		Applicant: ApplicantPayload{
			FirstName:        app.Applicant.FirstName,
			LastName:         app.Applicant.LastName,
			DateOfBirth:      app.Applicant.DateOfBirth,
			Email:            app.Applicant.Email,
			Phone:            app.Applicant.Phone,
			AnnualIncome:     app.Applicant.AnnualIncome,
			EmploymentStatus: app.Applicant.EmploymentStatus,
		},
		CreatedAt: app.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: app.UpdatedAt.UTC().Format(timestampLayout),
		Links: LoanLinks{
			Self:     Link{Href: self},
			Decision: &Link{Href: self + "/decision"},
		},
	}
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type ListLinks struct {
	Self Link  `json:"self"`
	Next *Link `json:"next,omitempty"`
	Prev *Link `json:"prev,omitempty"`
}

type PaginatedLoansResponse struct {
	Data       []LoanApplicationResponse `json:"data"`
	Pagination Pagination                `json:"pagination"`
	Links      ListLinks                 `json:"_links"`
}

type LoanDecisionResponse struct {
	ApplicationID    string  `json:"applicationId"`
	Status           string  `json:"status"`
	ApprovedAmount   float64 `json:"approvedAmount"`
	InterestRate     float64 `json:"interestRate"`
	ComparisonRate   float64 `json:"comparisonRate"`
	MonthlyRepayment float64 `json:"monthlyRepayment"`
	DecidedAt        string  `json:"decidedAt"`
}

// ListLoansQuery holds the parsed collection query. Page and PageSize arrive
// already defaulted by the controller.
type ListLoansQuery struct {
	Status   string
	Product  string
	Page     int
	PageSize int
}
