package services

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/apierror"
)

const testSigningSecret = "test-signing-secret"

func TestIssueToken(t *testing.T) {
	svc := NewTokenService(testSigningSecret)

	resp, apiErr := svc.Issue(models.TokenRequest{
		ClientID:     "loan-portal",
		ClientSecret: "s3cret",
		GrantType:    "client_credentials",
	})
	require.Nil(t, apiErr)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "loans:read loans:write", resp.Scope)

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte(testSigningSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "loan-portal", claims["sub"])
	assert.Equal(t, "loans:read loans:write", claims["scope"])
}

func TestIssueTokenRejectsBadRequests(t *testing.T) {
	svc := NewTokenService(testSigningSecret)

	tests := []struct {
		name string
		req  models.TokenRequest
	}{
		{"missing clientId", models.TokenRequest{ClientSecret: "s3cret", GrantType: "client_credentials"}},
		{"missing clientSecret", models.TokenRequest{ClientID: "loan-portal", GrantType: "client_credentials"}},
		{"wrong grant type", models.TokenRequest{ClientID: "loan-portal", ClientSecret: "s3cret", GrantType: "password"}},
		{"empty request", models.TokenRequest{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, apiErr := svc.Issue(tc.req)
			require.NotNil(t, apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, apierror.CodeInvalidRequest, apiErr.Code)
			assert.Equal(t, "clientId, clientSecret and grantType=client_credentials are required", apiErr.Message)
		})
	}
}
