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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plugin-api/src/internal/model"
)

func resultPage(count int) string {
	var b strings.Builder
	b.WriteString("<html><body><div id=\"links\">")
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b,
			`<div class="result results_links results_links_deep web-result">
			  <div class="result__body links_main links_deep">
			    <h2 class="result__title">
			      <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%%3A%%2F%%2Fexample.com%%2Fpage%d&amp;rut=abc">Result %d Title</a>
			    </h2>
			    <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%%3A%%2F%%2Fexample.com%%2Fpage%d">Result %d snippet text</a>
			  </div>
			</div>`, i, i, i, i)
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

func TestDuckDuckGoParsesResults(t *testing.T) {
	var gotQuery, gotRegion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/html/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		r.ParseForm()
		gotQuery = r.PostForm.Get("q")
		gotRegion = r.PostForm.Get("kl")
		fmt.Fprint(w, resultPage(3))
	}))
	defer srv.Close()

	provider := NewDuckDuckGoProvider(srv.URL, 5 * time.Second)
	results, err := provider.Search(context.Background(), "go testing", 5, "us-en")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotQuery != "go testing" {
		t.Errorf("expected query pass-through, got %q", gotQuery)
	}
	if gotRegion != "us-en" {
		t.Errorf("expected region in kl field, got %q", gotRegion)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	first := results[0]
	if first.Title != "Result 1 Title" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.URL != "https://example.com/page1" {
		t.Errorf("expected unwrapped redirect URL, got %q", first.URL)
	}
	if first.Snippet != "Result 1 snippet text" {
		t.Errorf("unexpected snippet %q", first.Snippet)
	}
	for i, result := range results {
		if result.Rank != i+1 {
			t.Errorf("result %d: expected rank %d, got %d", i, i+1, result.Rank)
		}
	}
}

func TestDuckDuckGoCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultPage(10))
	}))
	defer srv.Close()

	provider := NewDuckDuckGoProvider(srv.URL, 5 * time.Second)
	results, err := provider.Search(context.Background(), "go", 4, "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("expected results capped at 4, got %d", len(results))
	}
}

func TestDuckDuckGoEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><div id=\"links\"></div></body></html>")
	}))
	defer srv.Close()

	provider := NewDuckDuckGoProvider(srv.URL, 5 * time.Second)
	results, err := provider.Search(context.Background(), "gibberish", 5, "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestDuckDuckGoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	provider := NewDuckDuckGoProvider(srv.URL, 5 * time.Second)
	_, err := provider.Search(context.Background(), "go", 5, "")

	var failure *model.Failure
	if !errors.As(err, &failure) || failure.Code != model.CodeProviderError {
		t.Fatalf("expected PROVIDER_ERROR, got %v", err)
	}
	if !strings.Contains(failure.Message, "403") {
		t.Errorf("expected status in message, got %q", failure.Message)
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc&rut=x", "https://go.dev/doc"},
		{"https://example.com/direct", "https://example.com/direct"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveRedirect(tt.href); got != tt.want {
			t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
