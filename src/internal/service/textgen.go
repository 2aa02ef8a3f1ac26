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
	"strings"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/observability"
)

// TextService exposes the three generation operations. All of them share one
// client primitive and differ only in how the prompt frame is constructed.
type TextService struct {
	client *llmClient
}

// NewTextService constructs the text-generation adapter against an
// OpenAI-compatible endpoint.
func NewTextService(baseURL string, timeout time.Duration) *TextService {
	return &TextService{client: newLLMClient(baseURL, timeout)}
}

const generationSystemPrompt = "You are a skilled writing assistant. Produce the requested text directly, without preamble or commentary."

// Generate composes a fresh piece of text from the instruction payload.
func (s *TextService) Generate(ctx context.Context, req *dto.GenerateTextRequest) (*dto.GenerateTextResponse, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, model.NewFailure(model.CodeCredentialsMissing, "API key not provided")
	}

	prompt := appendModifiers(req.Prompt, [][2]string{
		{"Genre", req.Genre},
		{"Tone", req.Tone},
		{"Style", req.Style},
		{"Focus", req.Focus},
		{"Direction", req.Direction},
	})

	length := normalizeLength(req.Length)
	text, err := s.complete(ctx, req.APIKey, req.Model, prompt, length)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateTextResponse{
		Success: true,
		Text:    text,
		Model:   effectiveModel(req.Model),
		Length:  length,
	}, nil
}

// Continue extends priorText, prepending it to the request as context.
func (s *TextService) Continue(ctx context.Context, req *dto.ContinueTextRequest) (*dto.ContinueTextResponse, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, model.NewFailure(model.CodeCredentialsMissing, "API key not provided")
	}

	prompt := "Continue the following text. Pick up exactly where it leaves off, keeping the established voice and content:\n\n" + req.PriorText
	prompt = appendModifiers(prompt, [][2]string{{"Direction", req.Direction}})

	continuation, err := s.complete(ctx, req.APIKey, req.Model, prompt, normalizeLength(req.Length))
	if err != nil {
		return nil, err
	}

	return &dto.ContinueTextResponse{
		Success:      true,
		Continuation: continuation,
		FullText:     strings.TrimRight(req.PriorText, " \n") + "\n\n" + continuation,
	}, nil
}

// Revise submits priorText for enhancement along the named focus and style.
func (s *TextService) Revise(ctx context.Context, req *dto.ReviseTextRequest) (*dto.ReviseTextResponse, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, model.NewFailure(model.CodeCredentialsMissing, "API key not provided")
	}

	prompt := "Revise and improve the following text. Return only the revised version:\n\n" + req.PriorText
	prompt = appendModifiers(prompt, [][2]string{
		{"Focus", req.Focus},
		{"Style", req.Style},
	})

	revised, err := s.complete(ctx, req.APIKey, req.Model, prompt, normalizeLength(req.Length))
	if err != nil {
		return nil, err
	}

	return &dto.ReviseTextResponse{
		Success:     true,
		RevisedText: revised,
	}, nil
}

// Summarize is the generation half of the search-and-summarize composite.
// The prompt is fully assembled by the caller.
func (s *TextService) Summarize(ctx context.Context, apiKey, modelName, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", model.NewFailure(model.CodeCredentialsMissing, "API key not provided")
	}
	return s.complete(ctx, apiKey, modelName, prompt, constants.LengthMedium)
}

func (s *TextService) complete(ctx context.Context, apiKey, modelName, prompt, length string) (string, error) {
	start := time.Now()
	text, err := s.client.Complete(ctx, generationInput{
		APIKey:      apiKey,
		Model:       effectiveModel(modelName),
		System:      generationSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   maxTokensForLength(length),
		Temperature: constants.GenerationTemperature,
	})
	if err != nil {
		observability.RecordProviderCall(constants.ProviderText, "error", time.Since(start))
		return "", err
	}
	observability.RecordProviderCall(constants.ProviderText, "success", time.Since(start))
	return text, nil
}

// appendModifiers attaches the optional instruction modifiers as labeled
// suffix lines, skipping the empty ones.
func appendModifiers(prompt string, modifiers [][2]string) string {
	var suffix strings.Builder
	for _, modifier := range modifiers {
		if strings.TrimSpace(modifier[1]) == "" {
			continue
		}
		suffix.WriteString("\n")
		suffix.WriteString(modifier[0])
		suffix.WriteString(": ")
		suffix.WriteString(strings.TrimSpace(modifier[1]))
	}
	if suffix.Len() == 0 {
		return prompt
	}
	return prompt + "\n" + suffix.String()
}

func normalizeLength(length string) string {
	switch strings.ToLower(strings.TrimSpace(length)) {
	case constants.LengthShort:
		return constants.LengthShort
	case constants.LengthLong:
		return constants.LengthLong
	default:
		return constants.LengthMedium
	}
}

func maxTokensForLength(length string) int {
	switch length {
	case constants.LengthShort:
		return constants.MaxTokensShort
	case constants.LengthLong:
		return constants.MaxTokensLong
	default:
		return constants.MaxTokensMedium
	}
}

func effectiveModel(modelName string) string {
	if strings.TrimSpace(modelName) == "" {
		return constants.DefaultModel
	}
	return strings.TrimSpace(modelName)
}
