package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/apierror"
	"loan-applications-api/internal/logger"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

type LoanService interface {
	Create(ctx context.Context, req models.CreateLoanRequest) (models.LoanApplicationResponse, *apierror.Error)
	Get(ctx context.Context, id string) (models.LoanApplicationResponse, *apierror.Error)
	List(ctx context.Context, query models.ListLoansQuery) (models.PaginatedLoansResponse, *apierror.Error)
	Update(ctx context.Context, id string, req models.UpdateLoanRequest) (models.LoanApplicationResponse, *apierror.Error)
	Withdraw(ctx context.Context, id string) *apierror.Error
	Decision(ctx context.Context, id string) (models.LoanDecisionResponse, *apierror.Error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/v1/loans", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Get("/{id}", c.get)
		r.Patch("/{id}", c.update)
		r.Delete("/{id}", c.withdraw)
		r.Get("/{id}/decision", c.decision)
	})
}

func (c *LoanController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	logRequest(r, req)

	resp, apiErr := c.service.Create(r.Context(), req)
	if apiErr != nil {
		logError(r, apiErr, nil)
		apierror.Write(w, apiErr)
		return
	}

	w.Header().Set("Location", resp.Links.Self.Href)
	writeJSON(w, http.StatusCreated, resp)
	logResponse(r, http.StatusCreated, resp, start)
}

func (c *LoanController) list(w http.ResponseWriter, r *http.Request) {
	query := models.ListLoansQuery{
		Status:   r.URL.Query().Get("status"),
		Product:  r.URL.Query().Get("product"),
		Page:     parseIntOr(r.URL.Query().Get("page"), defaultPage),
		PageSize: parseIntOr(r.URL.Query().Get("pageSize"), defaultPageSize),
	}

	resp, apiErr := c.service.List(r.Context(), query)
	if apiErr != nil {
		logError(r, apiErr, nil)
		apierror.Write(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (c *LoanController) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, apiErr := c.service.Get(r.Context(), id)
	if apiErr != nil {
		apierror.Write(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (c *LoanController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	var req models.UpdateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	logRequest(r, req)

	resp, apiErr := c.service.Update(r.Context(), id, req)
	if apiErr != nil {
		logError(r, apiErr, logger.Fields{"applicationId": id})
		apierror.Write(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
	logResponse(r, http.StatusOK, resp, start)
}

func (c *LoanController) withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if apiErr := c.service.Withdraw(r.Context(), id); apiErr != nil {
		apierror.Write(w, apiErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *LoanController) decision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, apiErr := c.service.Decision(r.Context(), id)
	if apiErr != nil {
		apierror.Write(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseIntOr mirrors the lenient query parsing of the contract: anything that
// fails to parse falls back to the default rather than erroring.
func parseIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
