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

package dto

import (
	"strings"

	"plugin-api/src/internal/model"
)

// CRMAuthorizeRequest starts the OAuth authorization-code flow.
type CRMAuthorizeRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Domain       string `json:"domain,omitempty"` // production | sandbox
}

func (r *CRMAuthorizeRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return model.MissingField("clientId")
	}
	if strings.TrimSpace(r.ClientSecret) == "" {
		return model.MissingField("clientSecret")
	}
	return nil
}

// CRMAuthorizeResponse carries the fully formed redirect URL the caller's
// browser must visit to grant access.
type CRMAuthorizeResponse struct {
	Success      bool   `json:"success"`
	AuthorizeURL string `json:"authorizeUrl"`
}

// CRMConnection is the outcome of a completed token exchange. The values are
// exposed to the caller for client-side storage; the server keeps nothing.
type CRMConnection struct {
	AccessToken  string
	InstanceURL  string
	RefreshToken string
}

// OAuthCredential is the per-request credential pair every authenticated CRM
// operation must resupply. The server never stores it.
type OAuthCredential struct {
	AccessToken string `json:"accessToken"`
	InstanceURL string `json:"instanceUrl"`
}

// Connected reports whether both halves of the credential are present.
func (c OAuthCredential) Connected() bool {
	return strings.TrimSpace(c.AccessToken) != "" && strings.TrimSpace(c.InstanceURL) != ""
}

// CRMQueryRequest executes a caller-supplied SOQL string verbatim.
type CRMQueryRequest struct {
	SOQL string `json:"soql"`
	OAuthCredential
}

func (r *CRMQueryRequest) Validate() error {
	if strings.TrimSpace(r.SOQL) == "" {
		return model.MissingField("soql")
	}
	return nil
}

// CRMQueryResponse mirrors the provider's query result envelope.
type CRMQueryResponse struct {
	Success   bool                     `json:"success"`
	Records   []map[string]interface{} `json:"records"`
	TotalSize int                      `json:"totalSize"`
	Done      bool                     `json:"done"`
}

// CRMCreateRequest creates one record of the given entity type.
type CRMCreateRequest struct {
	EntityType string                 `json:"entityType"`
	Fields     map[string]interface{} `json:"fields"`
	OAuthCredential
}

func (r *CRMCreateRequest) Validate() error {
	if strings.TrimSpace(r.EntityType) == "" {
		return model.MissingField("entityType")
	}
	if len(r.Fields) == 0 {
		return model.MissingField("fields")
	}
	return nil
}

// CRMCreateResponse carries the created record's identifier.
type CRMCreateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// CRMUpdateRequest updates fields on an existing record.
type CRMUpdateRequest struct {
	EntityType string                 `json:"entityType"`
	RecordID   string                 `json:"recordId"`
	Fields     map[string]interface{} `json:"fields"`
	OAuthCredential
}

func (r *CRMUpdateRequest) Validate() error {
	if strings.TrimSpace(r.EntityType) == "" {
		return model.MissingField("entityType")
	}
	if strings.TrimSpace(r.RecordID) == "" {
		return model.MissingField("recordId")
	}
	if len(r.Fields) == 0 {
		return model.MissingField("fields")
	}
	return nil
}

// CRMUpdateResponse acknowledges the update; the provider returns no content.
type CRMUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CRMExecuteActionRequest invokes a named provider-specific action. This is a
// structural extension point; see the service for its current semantics.
type CRMExecuteActionRequest struct {
	ActionName string                 `json:"actionName"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	RecordID   string                 `json:"recordId,omitempty"`
	OAuthCredential
}

func (r *CRMExecuteActionRequest) Validate() error {
	if strings.TrimSpace(r.ActionName) == "" {
		return model.MissingField("actionName")
	}
	return nil
}

// CRMExecuteActionResponse echoes the acknowledged action invocation.
type CRMExecuteActionResponse struct {
	Success    bool                   `json:"success"`
	ActionName string                 `json:"actionName"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	RecordID   string                 `json:"recordId,omitempty"`
	Status     string                 `json:"status"`
}
