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
	"strings"
	"testing"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
)

// capturingProvider records each chat request and answers with a canned
// completion.
type capturingProvider struct {
	requests []map[string]interface{}
	reply    string
}

func (p *capturingProvider) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		p.requests = append(p.requests, payload)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": p.reply}},
			},
		})
	})
}

func (p *capturingProvider) userPrompt(t *testing.T, index int) string {
	t.Helper()
	if index >= len(p.requests) {
		t.Fatalf("expected at least %d requests, got %d", index+1, len(p.requests))
	}
	messages := p.requests[index]["messages"].([]interface{})
	last := messages[len(messages)-1].(map[string]interface{})
	return last["content"].(string)
}

func newTestTextService(t *testing.T, provider *capturingProvider) *TextService {
	t.Helper()
	srv := httptest.NewServer(provider.handler())
	t.Cleanup(srv.Close)
	return NewTextService(srv.URL, 5 * time.Second)
}

func TestGenerateAppendsModifiers(t *testing.T) {
	provider := &capturingProvider{reply: "generated text"}
	textService := newTestTextService(t, provider)

	resp, err := textService.Generate(context.Background(), &dto.GenerateTextRequest{
		Prompt: "Write about autumn",
		Genre:  "poetry",
		Tone:   "wistful",
		Length: "short",
		APIKey: "sk-test",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	prompt := provider.userPrompt(t, 0)
	if !strings.HasPrefix(prompt, "Write about autumn") {
		t.Errorf("prompt should start with the caller's text, got %q", prompt)
	}
	for _, fragment := range []string{"Genre: poetry", "Tone: wistful"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing modifier %q:\n%s", fragment, prompt)
		}
	}
	if strings.Contains(prompt, "Style:") {
		t.Errorf("empty modifiers must be skipped:\n%s", prompt)
	}

	if resp.Model != constants.DefaultModel {
		t.Errorf("expected default model in response, got %q", resp.Model)
	}
	if resp.Length != constants.LengthShort {
		t.Errorf("expected normalized length, got %q", resp.Length)
	}
	if provider.requests[0]["max_tokens"] != float64(constants.MaxTokensShort) {
		t.Errorf("expected short token ceiling, got %v", provider.requests[0]["max_tokens"])
	}
}

func TestGenerateUnknownLengthDefaultsToMedium(t *testing.T) {
	provider := &capturingProvider{reply: "generated"}
	textService := newTestTextService(t, provider)

	resp, err := textService.Generate(context.Background(), &dto.GenerateTextRequest{
		Prompt: "Write something",
		Length: "enormous",
		APIKey: "sk-test",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp.Length != constants.LengthMedium {
		t.Errorf("expected medium for unknown length, got %q", resp.Length)
	}
	if provider.requests[0]["max_tokens"] != float64(constants.MaxTokensMedium) {
		t.Errorf("expected medium token ceiling, got %v", provider.requests[0]["max_tokens"])
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	provider := &capturingProvider{reply: "never"}
	textService := newTestTextService(t, provider)

	_, err := textService.Generate(context.Background(), &dto.GenerateTextRequest{
		Prompt: "Write something",
	})

	var failure *model.Failure
	if !errors.As(err, &failure) || failure.Code != model.CodeCredentialsMissing {
		t.Fatalf("expected CREDENTIALS_MISSING, got %v", err)
	}
	if len(provider.requests) != 0 {
		t.Errorf("provider must not be called without an API key, saw %d requests", len(provider.requests))
	}
}

func TestContinueJoinsFullText(t *testing.T) {
	provider := &capturingProvider{reply: "And then it rained."}
	textService := newTestTextService(t, provider)

	resp, err := textService.Continue(context.Background(), &dto.ContinueTextRequest{
		PriorText: "The sky darkened.  \n",
		Direction: "introduce weather",
		APIKey:    "sk-test",
	})
	if err != nil {
		t.Fatalf("Continue returned error: %v", err)
	}

	if resp.Continuation != "And then it rained." {
		t.Errorf("unexpected continuation %q", resp.Continuation)
	}
	if resp.FullText != "The sky darkened.\n\nAnd then it rained." {
		t.Errorf("unexpected fullText %q", resp.FullText)
	}

	prompt := provider.userPrompt(t, 0)
	if !strings.Contains(prompt, "The sky darkened.") {
		t.Errorf("prompt missing prior text:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Direction: introduce weather") {
		t.Errorf("prompt missing direction modifier:\n%s", prompt)
	}
}

func TestReviseCarriesFocusAndStyle(t *testing.T) {
	provider := &capturingProvider{reply: "Improved text."}
	textService := newTestTextService(t, provider)

	resp, err := textService.Revise(context.Background(), &dto.ReviseTextRequest{
		PriorText: "the text to fix",
		Focus:     "clarity",
		Style:     "formal",
		APIKey:    "sk-test",
	})
	if err != nil {
		t.Fatalf("Revise returned error: %v", err)
	}
	if resp.RevisedText != "Improved text." {
		t.Errorf("unexpected revision %q", resp.RevisedText)
	}

	prompt := provider.userPrompt(t, 0)
	for _, fragment := range []string{"the text to fix", "Focus: clarity", "Style: formal"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestSummarizeUsesCallerModel(t *testing.T) {
	provider := &capturingProvider{reply: "A summary."}
	textService := newTestTextService(t, provider)

	summary, err := textService.Summarize(context.Background(), "sk-test", "gpt-4.1", "Summarize these sources")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary != "A summary." {
		t.Errorf("unexpected summary %q", summary)
	}
	if provider.requests[0]["model"] != "gpt-4.1" {
		t.Errorf("expected caller model pass-through, got %v", provider.requests[0]["model"])
	}
}
