package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/apierror"
	"loan-applications-api/internal/logger"
)

const (
	tokenTTL   = time.Hour
	tokenScope = "loans:read loans:write"
)

// TokenService issues client-credentials access tokens. Any non-blank
// clientId/clientSecret pair is accepted; no credential store exists.
type TokenService struct {
	signingSecret []byte
}

func NewTokenService(signingSecret string) *TokenService {
	return &TokenService{signingSecret: []byte(signingSecret)}
}

func (s *TokenService) Issue(req models.TokenRequest) (models.TokenResponse, *apierror.Error) {
	logger.Info("token service issue request", logger.Fields{
		"clientId":  req.ClientID,
		"grantType": req.GrantType,
	})

	if !req.Validate() {
		return models.TokenResponse{}, apierror.InvalidRequest("clientId, clientSecret and grantType=client_credentials are required")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   req.ClientID,
		"scope": tokenScope,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingSecret)
	if err != nil {
		logger.Error("token service signing failed", err, nil)
		return models.TokenResponse{}, apierror.Internal("Unable to issue token")
	}

	return models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenTTL.Seconds()),
		Scope:       tokenScope,
	}, nil
}
