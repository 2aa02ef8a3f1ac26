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
	"fmt"
	"strings"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/observability"
)

// Summarizer is the slice of the text adapter the composite operation needs.
type Summarizer interface {
	Summarize(ctx context.Context, apiKey, modelName, prompt string) (string, error)
}

// SearchService wraps the web-search provider and the search-and-summarize
// composite.
type SearchService struct {
	provider   SearchProvider
	summarizer Summarizer
}

// NewSearchService constructs the search adapter.
func NewSearchService(provider SearchProvider, summarizer Summarizer) *SearchService {
	return &SearchService{provider: provider, summarizer: summarizer}
}

// Search runs one query and normalizes the provider's results. A successful
// call that yields no items is a failure: downstream consumers cannot work
// without sources.
func (s *SearchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = constants.DefaultSearchResults
	}

	start := time.Now()
	results, err := s.provider.Search(ctx, req.Query, maxResults, req.Region)
	if err != nil {
		observability.RecordProviderCall(constants.ProviderSearch, "error", time.Since(start))
		return nil, err
	}
	observability.RecordProviderCall(constants.ProviderSearch, "success", time.Since(start))

	if len(results) == 0 {
		return nil, model.NewFailure(model.CodeZeroResults,
			"The search returned no results. This usually means the search provider is rate limiting or blocking automated queries, or outbound network access is restricted.")
	}

	return &dto.SearchResponse{
		Success: true,
		Results: results,
		Count:   len(results),
	}, nil
}

// SearchAndSummarize chains a successful search into the text-generation
// adapter. When the search step fails or yields nothing, the composite
// short-circuits with that failure and generation is never invoked.
func (s *SearchService) SearchAndSummarize(ctx context.Context, req *dto.SearchSummarizeRequest) (*dto.SearchSummarizeResponse, error) {
	searchResp, err := s.Search(ctx, &dto.SearchRequest{
		Query:      req.Query,
		MaxResults: req.MaxResults,
		Region:     req.Region,
	})
	if err != nil {
		return nil, err
	}

	prompt := buildSummaryPrompt(req.Query, req.Focus, searchResp.Results)
	summary, err := s.summarizer.Summarize(ctx, req.APIKey, req.Model, prompt)
	if err != nil {
		return nil, err
	}

	return &dto.SearchSummarizeResponse{
		Success:     true,
		Results:     searchResp.Results,
		Summary:     summary,
		SourceCount: len(searchResp.Results),
	}, nil
}

// buildSummaryPrompt enumerates every result in rank order so the generated
// summary can cite each source.
func buildSummaryPrompt(query, focus string, results []dto.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following web search results for the query %q.", query)
	if strings.TrimSpace(focus) != "" {
		fmt.Fprintf(&b, " Focus on %s.", strings.TrimSpace(focus))
	}
	b.WriteString("\n\nSources:\n")
	for _, result := range results {
		fmt.Fprintf(&b, "\n[%d] %s\n%s\n%s\n", result.Rank, result.Title, result.URL, result.Snippet)
	}
	b.WriteString("\nWrite a concise summary grounded only in these sources.")
	return b.String()
}
