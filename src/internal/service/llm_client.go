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
	"io"
	"net/http"
	"strings"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/model"
)

// llmClient talks to an OpenAI-compatible generation API.
type llmClient struct {
	httpClient *http.Client
	baseURL    string
}

func newLLMClient(baseURL string, timeout time.Duration) *llmClient {
	return &llmClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// generationInput is the provider-neutral request for one completion.
type generationInput struct {
	APIKey      string
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Complete submits one synchronous generation request and returns the
// generated text.
//
// Models carrying the transcript prefix answer through a different endpoint
// whose result is a structured transcript rather than a flat text field. For
// those the client runs a two-stage protocol: extract the last
// assistant-authored text segment, fall back to a textual dump of the whole
// transcript, and as a last resort retry the call with the plain completion
// shape. The preferred field being absent is never an error by itself.
func (c *llmClient) Complete(ctx context.Context, in generationInput) (string, error) {
	if strings.HasPrefix(in.Model, constants.TranscriptModelPrefix) {
		text, err := c.completeTranscript(ctx, in)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		// Transcript extraction produced nothing; retry with the simpler shape.
		return c.completeChat(ctx, in)
	}
	return c.completeChat(ctx, in)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *llmClient) completeChat(ctx context.Context, in generationInput) (string, error) {
	payload := map[string]interface{}{
		"model":       in.Model,
		"messages":    []chatMessage{{Role: "system", Content: in.System}, {Role: "user", Content: in.Prompt}},
		"max_tokens":  in.MaxTokens,
		"temperature": in.Temperature,
	}

	body, err := c.post(ctx, "/v1/chat/completions", in.APIKey, payload)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", model.NewFailuref(model.CodeProviderError, "failed to parse generation response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", model.NewFailure(model.CodeProviderError, "generation response contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// transcriptItem is one entry in the structured transcript response shape.
type transcriptItem struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *llmClient) completeTranscript(ctx context.Context, in generationInput) (string, error) {
	payload := map[string]interface{}{
		"model":             in.Model,
		"instructions":      in.System,
		"input":             in.Prompt,
		"max_output_tokens": in.MaxTokens,
	}

	body, err := c.post(ctx, "/v1/responses", in.APIKey, payload)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Output []transcriptItem `json:"output"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", model.NewFailuref(model.CodeProviderError, "failed to parse transcript response: %v", err)
	}

	// Prefer the last assistant-authored text segment.
	for i := len(parsed.Output) - 1; i >= 0; i-- {
		item := parsed.Output[i]
		if item.Role != "assistant" {
			continue
		}
		var parts []string
		for _, content := range item.Content {
			if content.Type == "output_text" && strings.TrimSpace(content.Text) != "" {
				parts = append(parts, content.Text)
			}
		}
		if len(parts) > 0 {
			return strings.TrimSpace(strings.Join(parts, "\n")), nil
		}
	}

	// Degrade to a textual dump of whatever the transcript carried.
	var dump []string
	for _, item := range parsed.Output {
		for _, content := range item.Content {
			if strings.TrimSpace(content.Text) != "" {
				dump = append(dump, content.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(dump, "\n")), nil
}

// post issues one JSON request and maps provider error responses onto the
// failure taxonomy.
func (c *llmClient) post(ctx context.Context, path, apiKey string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to encode generation request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to create generation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "generation request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewFailuref(model.CodeProviderError, "failed to read generation response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyGenerationError(resp.StatusCode, body)
	}
	return body, nil
}

// classifyGenerationError maps a non-200 provider response onto the failure
// taxonomy. Unrecognized-model errors are surfaced verbatim under their own
// code; everything else is an opaque provider error.
func classifyGenerationError(status int, body []byte) *model.Failure {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		if parsed.Error.Code == "model_not_found" {
			return model.NewFailure(model.CodeInvalidModel, parsed.Error.Message)
		}
		return model.NewFailure(model.CodeProviderError, parsed.Error.Message)
	}
	return model.NewFailuref(model.CodeProviderError, "generation provider returned status %d: %s", status, string(body))
}
