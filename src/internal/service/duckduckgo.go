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
	"net/http"
	"net/url"
	"strings"
	"time"

	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"

	"golang.org/x/net/html"
)

// SearchProvider yields normalized results for one query. Implementations
// stop iterating once maxResults items have been produced.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int, region string) ([]dto.SearchResult, error)
}

// duckDuckGoProvider scrapes the DuckDuckGo HTML endpoint, which needs no
// API key.
type duckDuckGoProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewDuckDuckGoProvider constructs the default web-search provider.
func NewDuckDuckGoProvider(baseURL string, timeout time.Duration) SearchProvider {
	return &duckDuckGoProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (p *duckDuckGoProvider) Search(ctx context.Context, query string, maxResults int, region string) ([]dto.SearchResult, error) {
	form := url.Values{"q": {query}}
	if strings.TrimSpace(region) != "" {
		form.Set("kl", region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to create search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; plugin-api/1.0)")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewFailuref(model.CodeProviderError, "search provider returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to parse search response: %v", err)
	}

	return extractResults(doc, maxResults), nil
}

// extractResults walks the result page and pairs title/link anchors with
// their snippets in document order. Iteration stops at maxResults even when
// more results remain on the page.
func extractResults(doc *html.Node, maxResults int) []dto.SearchResult {
	var titles []dto.SearchResult
	var snippets []string

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			classes := attrValue(n, "class")
			switch {
			case strings.Contains(classes, "result__a"):
				if len(titles) < maxResults {
					titles = append(titles, dto.SearchResult{
						Title: strings.TrimSpace(textContent(n)),
						URL:   resolveRedirect(attrValue(n, "href")),
					})
				}
			case strings.Contains(classes, "result__snippet"):
				if len(snippets) < maxResults {
					snippets = append(snippets, strings.TrimSpace(textContent(n)))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(doc)

	results := make([]dto.SearchResult, 0, len(titles))
	for i, item := range titles {
		item.Rank = i + 1
		if i < len(snippets) {
			item.Snippet = snippets[i]
		}
		results = append(results, item)
	}
	return results
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textContent(child))
	}
	return b.String()
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL. Unrecognized hrefs are returned as-is.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
