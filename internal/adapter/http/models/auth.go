package models

import "strings"

const grantClientCredentials = "client_credentials"

type TokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	GrantType    string `json:"grantType"`
}

// Validate accepts any non-blank credentials; only the grant type is checked
// for an exact value.
func (r TokenRequest) Validate() bool {
	return strings.TrimSpace(r.ClientID) != "" &&
		strings.TrimSpace(r.ClientSecret) != "" &&
		r.GrantType == grantClientCredentials
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	Scope       string `json:"scope"`
}
