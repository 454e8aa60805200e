package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/apierror"
)

type TokenService interface {
	Issue(req models.TokenRequest) (models.TokenResponse, *apierror.Error)
}

type AuthController struct {
	service TokenService
}

func NewAuthController(service TokenService) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes mounts the token endpoint. It is unauthenticated: it is how
// clients obtain credentials in the first place.
func (c *AuthController) RegisterRoutes(r chi.Router) {
	r.Post("/oauth/token", c.token)
}

func (c *AuthController) token(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	logRequest(r, req)

	resp, apiErr := c.service.Issue(req)
	if apiErr != nil {
		logError(r, apiErr, nil)
		apierror.Write(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
	logResponse(r, http.StatusOK, resp, start)
}
