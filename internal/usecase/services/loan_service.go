package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/apierror"
	"loan-applications-api/internal/domain"
	"loan-applications-api/internal/logger"
	"loan-applications-api/internal/metrics"
)

const (
	decisionInterestRate   = 6.49
	decisionComparisonRate = 6.71
	// Monthly repayment is a flat 0.5% of the approved amount; the mock
	// decision engine does no amortization.
	decisionRepaymentFactor = 0.005
)

type LoanService struct {
	repo domain.ApplicationRepository
}

func NewLoanService(repo domain.ApplicationRepository) *LoanService {
	return &LoanService{repo: repo}
}

// Create runs the submission pipeline in order: mandatory fields, product
// limits, affordability. The first failing stage terminates the request.
func (s *LoanService) Create(ctx context.Context, req models.CreateLoanRequest) (models.LoanApplicationResponse, *apierror.Error) {
	logger.Info("loan service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if details := req.Validate(); details != nil {
		logger.Info("loan service create validation failed", logger.Fields{
			"missingFields": len(details),
		})
		return models.LoanApplicationResponse{}, s.reject(apierror.Validation("One or more required fields are missing", details))
	}

	limits, err := domain.LimitsFor(domain.Product(req.Product))
	if err != nil {
		logger.Info("loan service create unknown product", logger.Fields{
			"product": req.Product,
		})
		return models.LoanApplicationResponse{}, s.reject(apierror.Validation("Invalid product type", map[string][]string{
			"product": {"invalid value"},
		}))
	}

	if req.RequestedAmount < limits.Min {
		return models.LoanApplicationResponse{}, s.reject(apierror.BoundaryViolation(
			fmt.Sprintf("requestedAmount must be at least %s", formatAmount(limits.Min)),
			map[string][]string{"requestedAmount": {fmt.Sprintf("minimum is %s", formatAmount(limits.Min))}},
		))
	}
	if req.RequestedAmount > limits.Max {
		return models.LoanApplicationResponse{}, s.reject(apierror.BoundaryViolation(
			fmt.Sprintf("requestedAmount exceeds product maximum of %s", formatAmount(limits.Max)),
			map[string][]string{"requestedAmount": {fmt.Sprintf("maximum for %s is %s", req.Product, formatAmount(limits.Max))}},
		))
	}

	if !domain.AffordabilityOK(req.RequestedAmount, req.Applicant.AnnualIncome) {
		logger.Info("loan service create affordability check failed", logger.Fields{
			"requestedAmount": req.RequestedAmount,
		})
		return models.LoanApplicationResponse{}, s.reject(apierror.AffordabilityFailed())
	}

	app := req.ToDomain(time.Now().UTC())
	if err := s.repo.Create(ctx, app); err != nil {
		logger.Error("loan service create store failed", err, logger.Fields{
			"applicationId": app.ApplicationID,
		})
		return models.LoanApplicationResponse{}, apierror.Internal("Unable to store application")
	}

	metrics.ApplicationsCreated.Inc()
	logger.Info("loan service create success", logger.Fields{
		"applicationId":   app.ApplicationID,
		"referenceNumber": app.ReferenceNumber,
		"product":         string(app.Product),
	})

	return models.NewLoanApplicationResponse(app), nil
}

func (s *LoanService) Get(ctx context.Context, id string) (models.LoanApplicationResponse, *apierror.Error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return models.LoanApplicationResponse{}, apierror.NotFound(id)
		}
		logger.Error("loan service get failed", err, logger.Fields{"applicationId": id})
		return models.LoanApplicationResponse{}, apierror.Internal("Unable to fetch application")
	}

	return models.NewLoanApplicationResponse(app), nil
}

// List applies status/product filters before pagination, so the page window
// slices the filtered set. Out-of-range pages return an empty data array.
func (s *LoanService) List(ctx context.Context, query models.ListLoansQuery) (models.PaginatedLoansResponse, *apierror.Error) {
	apps, err := s.repo.List(ctx, domain.ApplicationFilter{
		Status:  domain.Status(query.Status),
		Product: domain.Product(query.Product),
	})
	if err != nil {
		logger.Error("loan service list failed", err, nil)
		return models.PaginatedLoansResponse{}, apierror.Internal("Unable to list applications")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	total := len(apps)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	data := make([]models.LoanApplicationResponse, 0, end-start)
	for _, app := range apps[start:end] {
		data = append(data, models.NewLoanApplicationResponse(app))
	}

	links := models.ListLinks{
		Self: models.Link{Href: listHref(page, pageSize)},
	}
	if page < totalPages {
		links.Next = &models.Link{Href: listHref(page+1, pageSize)}
	}
	if page > 1 {
		links.Prev = &models.Link{Href: listHref(page-1, pageSize)}
	}

	return models.PaginatedLoansResponse{
		Data: data,
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: total,
			TotalPages: totalPages,
		},
		Links: links,
	}, nil
}

func (s *LoanService) Update(ctx context.Context, id string, req models.UpdateLoanRequest) (models.LoanApplicationResponse, *apierror.Error) {
	logger.Info("loan service update request", logger.Fields{
		"applicationId": id,
		"payload":       logger.SanitizePayload(req),
	})

	app, err := s.repo.Update(ctx, id, req.ToPatch())
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return models.LoanApplicationResponse{}, apierror.NotFound(id)
		}
		logger.Error("loan service update failed", err, logger.Fields{"applicationId": id})
		return models.LoanApplicationResponse{}, apierror.Internal("Unable to update application")
	}

	return models.NewLoanApplicationResponse(app), nil
}

func (s *LoanService) Withdraw(ctx context.Context, id string) *apierror.Error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return apierror.NotFound(id)
		}
		logger.Error("loan service withdraw failed", err, logger.Fields{"applicationId": id})
		return apierror.Internal("Unable to withdraw application")
	}

	logger.Info("loan service withdraw success", logger.Fields{"applicationId": id})
	return nil
}

// Decision synthesizes an approval from the stored application. It never
// transitions the application's status.
func (s *LoanService) Decision(ctx context.Context, id string) (models.LoanDecisionResponse, *apierror.Error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return models.LoanDecisionResponse{}, apierror.NotFound(id)
		}
		logger.Error("loan service decision failed", err, logger.Fields{"applicationId": id})
		return models.LoanDecisionResponse{}, apierror.Internal("Unable to fetch decision")
	}

	monthly := decimal.NewFromFloat(app.RequestedAmount).
		Mul(decimal.NewFromFloat(decisionRepaymentFactor)).
		Round(2).
		InexactFloat64()

	return models.LoanDecisionResponse{
		ApplicationID:    app.ApplicationID,
		Status:           string(domain.StatusApproved),
		ApprovedAmount:   app.RequestedAmount,
		InterestRate:     decisionInterestRate,
		ComparisonRate:   decisionComparisonRate,
		MonthlyRepayment: monthly,
		DecidedAt:        time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}, nil
}

func (s *LoanService) reject(apiErr *apierror.Error) *apierror.Error {
	metrics.SubmissionsRejected.WithLabelValues(string(apiErr.Code)).Inc()
	return apiErr
}

// formatAmount renders limits the way they appear in contract messages:
// no exponent, no trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func listHref(page, pageSize int) string {
	return fmt.Sprintf("/v1/loans?page=%d&pageSize=%d", page, pageSize)
}
