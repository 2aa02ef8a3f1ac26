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
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/session"
)

func newTestOAuthService(t *testing.T) (*OAuthService, *session.Store) {
	t.Helper()
	store := session.NewStore(10 * time.Minute)
	oauthService := NewOAuthService(store, "test-secret", "http://localhost:8080", 5*time.Second)
	return oauthService, store
}

func TestBeginAuthorizationURL(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		wantHost string
	}{
		{"production default", "", constants.CRMProductionHost},
		{"explicit production", "production", constants.CRMProductionHost},
		{"sandbox", "sandbox", constants.CRMSandboxHost},
		{"unknown falls back to production", "staging", constants.CRMProductionHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oauthService, store := newTestOAuthService(t)

			resp, err := oauthService.BeginAuthorization("sid-1", &dto.CRMAuthorizeRequest{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				Domain:       tt.domain,
			})
			if err != nil {
				t.Fatalf("BeginAuthorization returned error: %v", err)
			}

			if !strings.HasPrefix(resp.AuthorizeURL, tt.wantHost+constants.CRMAuthorizePath+"?") {
				t.Errorf("expected URL on %s, got %s", tt.wantHost, resp.AuthorizeURL)
			}

			parsed, err := url.Parse(resp.AuthorizeURL)
			if err != nil {
				t.Fatalf("authorize URL does not parse: %v", err)
			}
			query := parsed.Query()
			if query.Get("response_type") != "code" {
				t.Errorf("expected response_type=code, got %q", query.Get("response_type"))
			}
			if query.Get("client_id") != "client-id" {
				t.Errorf("expected client_id pass-through, got %q", query.Get("client_id"))
			}
			if query.Get("scope") != constants.CRMOAuthScopes {
				t.Errorf("expected scopes %q, got %q", constants.CRMOAuthScopes, query.Get("scope"))
			}
			if query.Get("redirect_uri") != "http://localhost:8080/crm/callback" {
				t.Errorf("unexpected redirect_uri %q", query.Get("redirect_uri"))
			}

			// The state parameter must bind back to the caller's session.
			sid, err := oauthService.verifyState(query.Get("state"))
			if err != nil {
				t.Fatalf("state does not verify: %v", err)
			}
			if sid != "sid-1" {
				t.Errorf("expected state bound to sid-1, got %q", sid)
			}

			// The client secret must never appear in the authorize URL.
			if strings.Contains(resp.AuthorizeURL, "client-secret") {
				t.Error("client secret leaked into the authorize URL")
			}

			if store.Len() != 1 {
				t.Errorf("expected one pending authorization, got %d", store.Len())
			}
		})
	}
}

func TestCompleteAuthorizationExchangesCode(t *testing.T) {
	var gotForm url.Values
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != constants.CRMTokenPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		r.ParseForm()
		gotForm = r.PostForm
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "00D-access",
			"instance_url":  "https://acme.my.salesforce.com",
			"refresh_token": "00D-refresh",
		})
	}))
	defer tokenSrv.Close()

	oauthService, _ := newTestOAuthService(t)
	oauthService.hostFor = func(string) string { return tokenSrv.URL }

	resp, err := oauthService.BeginAuthorization("sid-1", &dto.CRMAuthorizeRequest{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	if err != nil {
		t.Fatalf("BeginAuthorization returned error: %v", err)
	}
	state := url.Values{}
	if parsed, err := url.Parse(resp.AuthorizeURL); err == nil {
		state = parsed.Query()
	}

	conn, err := oauthService.CompleteAuthorization(context.Background(), "auth-code", state.Get("state"))
	if err != nil {
		t.Fatalf("CompleteAuthorization returned error: %v", err)
	}

	if conn.AccessToken != "00D-access" || conn.InstanceURL != "https://acme.my.salesforce.com" {
		t.Errorf("unexpected connection %+v", conn)
	}
	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("expected authorization_code grant, got %q", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "auth-code" {
		t.Errorf("expected code pass-through, got %q", gotForm.Get("code"))
	}
	if gotForm.Get("client_secret") != "client-secret" {
		t.Errorf("expected stored client secret in exchange, got %q", gotForm.Get("client_secret"))
	}
}

func TestCompleteAuthorizationConsumesSession(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok",
			"instance_url": "https://acme.my.salesforce.com",
		})
	}))
	defer tokenSrv.Close()

	oauthService, _ := newTestOAuthService(t)
	oauthService.hostFor = func(string) string { return tokenSrv.URL }

	resp, err := oauthService.BeginAuthorization("sid-1", &dto.CRMAuthorizeRequest{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	if err != nil {
		t.Fatalf("BeginAuthorization returned error: %v", err)
	}
	parsed, _ := url.Parse(resp.AuthorizeURL)
	state := parsed.Query().Get("state")

	if _, err := oauthService.CompleteAuthorization(context.Background(), "code-1", state); err != nil {
		t.Fatalf("first callback failed: %v", err)
	}

	// A replayed callback must miss: the pending entry was consumed.
	_, err = oauthService.CompleteAuthorization(context.Background(), "code-2", state)
	if !errors.Is(err, constants.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired on replay, got %v", err)
	}
}

func TestCompleteAuthorizationInvalidState(t *testing.T) {
	oauthService, _ := newTestOAuthService(t)

	tests := []string{
		"not-a-jwt",
		"",
	}
	for _, state := range tests {
		_, err := oauthService.CompleteAuthorization(context.Background(), "code", state)
		if !errors.Is(err, constants.ErrStateInvalid) {
			t.Errorf("state %q: expected ErrStateInvalid, got %v", state, err)
		}
	}
}

func TestCompleteAuthorizationForgedState(t *testing.T) {
	oauthService, _ := newTestOAuthService(t)

	// State signed with a different secret must be rejected.
	forger := NewOAuthService(session.NewStore(time.Minute), "other-secret", "http://localhost:8080", time.Second)
	forged, err := forger.signState("sid-1")
	if err != nil {
		t.Fatalf("failed to sign forged state: %v", err)
	}

	_, err = oauthService.CompleteAuthorization(context.Background(), "code", forged)
	if !errors.Is(err, constants.ErrStateInvalid) {
		t.Errorf("expected ErrStateInvalid for forged state, got %v", err)
	}
}

func TestCompleteAuthorizationNoPendingSession(t *testing.T) {
	oauthService, _ := newTestOAuthService(t)

	state, err := oauthService.signState("sid-without-pending")
	if err != nil {
		t.Fatalf("failed to sign state: %v", err)
	}

	_, err = oauthService.CompleteAuthorization(context.Background(), "code", state)
	if !errors.Is(err, constants.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestCompleteAuthorizationExchangeRejected(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "expired authorization code",
		})
	}))
	defer tokenSrv.Close()

	oauthService, _ := newTestOAuthService(t)
	oauthService.hostFor = func(string) string { return tokenSrv.URL }

	resp, err := oauthService.BeginAuthorization("sid-1", &dto.CRMAuthorizeRequest{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	if err != nil {
		t.Fatalf("BeginAuthorization returned error: %v", err)
	}
	parsed, _ := url.Parse(resp.AuthorizeURL)

	_, err = oauthService.CompleteAuthorization(context.Background(), "stale-code", parsed.Query().Get("state"))
	if !errors.Is(err, constants.ErrTokenExchange) {
		t.Fatalf("expected ErrTokenExchange, got %v", err)
	}
	if !strings.Contains(err.Error(), "expired authorization code") {
		t.Errorf("expected provider description in error, got %q", err.Error())
	}
}
