/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

// stateTTL bounds how long the signed state parameter stays valid after the
// caller is redirected to the provider.
const stateTTL = 10 * time.Minute

// OAuthService runs the CRM authorization-code flow. Client credentials live
// only in the pending-authorization store between the authorize call and its
// callback; exchanged tokens are returned to the caller and never retained.
type OAuthService struct {
	httpClient  *http.Client
	store       *session.Store
	stateSecret []byte
	baseURL     string
	hostFor     func(domain string) string
	now         func() time.Time
}

// NewOAuthService constructs the authorization-flow service. baseURL is the
// externally visible origin used to derive the provider redirect URI.
func NewOAuthService(store *session.Store, stateSecret, baseURL string, timeout time.Duration) *OAuthService {
	return &OAuthService{
		httpClient:  &http.Client{Timeout: timeout},
		store:       store,
		stateSecret: []byte(stateSecret),
		baseURL:     strings.TrimRight(baseURL, "/"),
		hostFor:     authorizationHost,
		now:         time.Now,
	}
}

// authorizationHost maps the requested domain to the provider login host.
// Anything other than an explicit sandbox request goes to production.
func authorizationHost(domain string) string {
	if strings.EqualFold(strings.TrimSpace(domain), constants.CRMDomainSandbox) {
		return constants.CRMSandboxHost
	}
	return constants.CRMProductionHost
}

// BeginAuthorization stores the caller's client credentials against its
// session and returns the provider authorize URL the caller must visit. A
// repeat call from the same session replaces the earlier pending attempt.
func (s *OAuthService) BeginAuthorization(sid string, req *dto.CRMAuthorizeRequest) (*dto.CRMAuthorizeResponse, error) {
	state, err := s.signState(sid)
	if err != nil {
		return nil, fmt.Errorf("failed to sign authorization state: %w", err)
	}

	s.store.Put(sid, model.PendingAuthorization{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Domain:       req.Domain,
	})

	query := url.Values{
		"response_type": {"code"},
		"client_id":     {req.ClientID},
		"scope":         {constants.CRMOAuthScopes},
		"redirect_uri":  {s.redirectURI()},
		"state":         {state},
	}

	return &dto.CRMAuthorizeResponse{
		Success:      true,
		AuthorizeURL: s.hostFor(req.Domain) + constants.CRMAuthorizePath + "?" + query.Encode(),
	}, nil
}

// CompleteAuthorization handles the provider redirect: it verifies the state
// parameter, consumes the pending authorization it names, and exchanges the
// authorization code for tokens. The pending entry is gone after this call
// whether or not the exchange succeeds.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, code, state string) (*dto.CRMConnection, error) {
	sid, err := s.verifyState(state)
	if err != nil {
		return nil, constants.ErrStateInvalid
	}

	pending, ok := s.store.Take(sid)
	if !ok {
		return nil, constants.ErrSessionExpired
	}

	return s.exchangeCode(ctx, pending, code)
}

// redirectURI is the callback endpoint registered with the provider.
func (s *OAuthService) redirectURI() string {
	return s.baseURL + "/crm/callback"
}

// signState issues a short-lived HS256 token binding the redirect back to the
// caller's session without exposing the session id structure.
func (s *OAuthService) signState(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": s.now().Add(stateTTL).Unix(),
		"iat": s.now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.stateSecret)
}

// verifyState validates the signed state parameter and returns the session id
// it carries.
func (s *OAuthService) verifyState(state string) (string, error) {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.stateSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("state token missing session binding")
	}
	return sid, nil
}

// exchangeCode posts the authorization code to the provider token endpoint
// and returns the resulting connection.
func (s *OAuthService) exchangeCode(ctx context.Context, pending model.PendingAuthorization, code string) (*dto.CRMConnection, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {pending.ClientID},
		"client_secret": {pending.ClientSecret},
		"redirect_uri":  {s.redirectURI()},
	}

	tokenURL := s.hostFor(pending.Domain) + constants.CRMTokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", constants.ErrTokenExchange, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", constants.ErrTokenExchange, tokenErrorDetail(resp.StatusCode, body))
	}

	var parsed struct {
		AccessToken  string `json:"access_token"`
		InstanceURL  string `json:"instance_url"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", constants.ErrTokenExchange, err)
	}
	if parsed.AccessToken == "" || parsed.InstanceURL == "" {
		return nil, fmt.Errorf("%w: response missing access token or instance url", constants.ErrTokenExchange)
	}

	return &dto.CRMConnection{
		AccessToken:  parsed.AccessToken,
		InstanceURL:  parsed.InstanceURL,
		RefreshToken: parsed.RefreshToken,
	}, nil
}

// tokenErrorDetail extracts the provider's error description when the token
// endpoint rejects the exchange.
func tokenErrorDetail(status int, body []byte) string {
	var parsed struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Description != "" {
		if parsed.Error != "" {
			return fmt.Sprintf("%s: %s", parsed.Error, parsed.Description)
		}
		return parsed.Description
	}
	return fmt.Sprintf("provider returned status %d: %s", status, string(body))
}
