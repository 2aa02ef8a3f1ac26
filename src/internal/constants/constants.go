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

package constants

// Provider identifiers used for capability checks and metrics labels
const (
	ProviderMail   = "mail"
	ProviderText   = "text"
	ProviderSearch = "search"
	ProviderCRM    = "crm"
)

// Generation length categories and their token ceilings
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"

	MaxTokensShort  = 500
	MaxTokensMedium = 1500
	MaxTokensLong   = 3000
)

// GenerationTemperature is the fixed sampling temperature for all
// text-generation operations.
const GenerationTemperature = 0.7

// DefaultModel is used when a generation request does not name a model.
const DefaultModel = "gpt-4o-mini"

// TranscriptModelPrefix marks models whose responses arrive as a structured
// transcript instead of a flat text field.
const TranscriptModelPrefix = "gpt-5"

// CRM OAuth endpoints and defaults
const (
	CRMDomainProduction = "production"
	CRMDomainSandbox    = "sandbox"

	CRMProductionHost = "https://login.salesforce.com"
	CRMSandboxHost    = "https://test.salesforce.com"

	CRMAuthorizePath = "/services/oauth2/authorize"
	CRMTokenPath     = "/services/oauth2/token"

	CRMOAuthScopes = "api refresh_token"

	CRMAPIVersion = "v58.0"
)

// DefaultSearchResults caps search responses when the caller does not
// request a count.
const DefaultSearchResults = 5

// SessionCookieName carries the caller's session identity used to correlate
// an OAuth authorize call with its callback.
const SessionCookieName = "plugin_session"
