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

// GenerateTextRequest is the input for POST /text/generate. The modifier
// fields are optional and appended to the prompt as labeled suffix lines.
type GenerateTextRequest struct {
	Prompt    string `json:"prompt"`
	Genre     string `json:"genre,omitempty"`
	Tone      string `json:"tone,omitempty"`
	Style     string `json:"style,omitempty"`
	Focus     string `json:"focus,omitempty"`
	Direction string `json:"direction,omitempty"`
	Length    string `json:"length,omitempty"` // short | medium | long
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"apiKey"`
}

func (r *GenerateTextRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return model.MissingField("prompt")
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return model.MissingField("apiKey")
	}
	return nil
}

// GenerateTextResponse is the success payload for POST /text/generate.
type GenerateTextResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Model   string `json:"model"`
	Length  string `json:"length"`
}

// ContinueTextRequest is the input for POST /text/continue.
type ContinueTextRequest struct {
	PriorText string `json:"priorText"`
	Direction string `json:"direction,omitempty"`
	Length    string `json:"length,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"apiKey"`
}

func (r *ContinueTextRequest) Validate() error {
	if strings.TrimSpace(r.PriorText) == "" {
		return model.MissingField("priorText")
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return model.MissingField("apiKey")
	}
	return nil
}

// ContinueTextResponse is the success payload for POST /text/continue.
type ContinueTextResponse struct {
	Success      bool   `json:"success"`
	Continuation string `json:"continuation"`
	FullText     string `json:"fullText"`
}

// ReviseTextRequest is the input for POST /text/revise.
type ReviseTextRequest struct {
	PriorText string `json:"priorText"`
	Focus     string `json:"focus,omitempty"`
	Style     string `json:"style,omitempty"`
	Length    string `json:"length,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"apiKey"`
}

func (r *ReviseTextRequest) Validate() error {
	if strings.TrimSpace(r.PriorText) == "" {
		return model.MissingField("priorText")
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return model.MissingField("apiKey")
	}
	return nil
}

// ReviseTextResponse is the success payload for POST /text/revise.
type ReviseTextResponse struct {
	Success     bool   `json:"success"`
	RevisedText string `json:"revisedText"`
}
