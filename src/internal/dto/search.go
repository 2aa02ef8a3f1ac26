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

// SearchRequest is the input for POST /search.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults,omitempty"`
	Region     string `json:"region,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return model.MissingField("query")
	}
	return nil
}

// SearchResult is one normalized item from the search provider. Rank is the
// 1-based position in the provider's result stream.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Rank    int    `json:"rank"`
}

// SearchResponse is the success payload for POST /search.
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// SearchSummarizeRequest is the input for POST /search/summarize, the
// composite operation chaining search into text generation.
type SearchSummarizeRequest struct {
	Query      string `json:"query"`
	Focus      string `json:"focus,omitempty"`
	MaxResults int    `json:"maxResults,omitempty"`
	Region     string `json:"region,omitempty"`
	Model      string `json:"model,omitempty"`
	APIKey     string `json:"apiKey"`
}

func (r *SearchSummarizeRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return model.MissingField("query")
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return model.MissingField("apiKey")
	}
	return nil
}

// SearchSummarizeResponse is the success payload for POST /search/summarize.
type SearchSummarizeResponse struct {
	Success     bool           `json:"success"`
	Results     []SearchResult `json:"results"`
	Summary     string         `json:"summary"`
	SourceCount int            `json:"sourceCount"`
}
