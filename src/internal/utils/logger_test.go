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

package utils

import (
	"strings"
	"testing"
)

func TestRedactMasksCredentialValues(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		hidden []string
		kept   []string
	}{
		{
			name:   "password in form payload",
			input:  "dial failed: password=hunter2&user=bob",
			hidden: []string{"hunter2"},
			kept:   []string{"dial failed", "user=bob"},
		},
		{
			name:   "api key in query",
			input:  "request rejected: api_key=sk-abc123 status=401",
			hidden: []string{"sk-abc123"},
			kept:   []string{"request rejected", "status=401"},
		},
		{
			name:   "bearer header echo",
			input:  `provider said: Authorization: Bearer sk-secret-token was invalid`,
			hidden: []string{"sk-secret-token"},
			kept:   []string{"provider said", "was invalid"},
		},
		{
			name:   "client secret",
			input:  "exchange failed for client_secret=topsecret",
			hidden: []string{"topsecret"},
			kept:   []string{"exchange failed"},
		},
		{
			name:   "multiple occurrences",
			input:  "password=one then password=two",
			hidden: []string{"one", "two"},
			kept:   []string{"then"},
		},
		{
			name:  "no credentials",
			input: "connection refused by 10.0.0.1:587",
			kept:  []string{"connection refused by 10.0.0.1:587"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.input)
			for _, secret := range tt.hidden {
				if strings.Contains(got, secret) {
					t.Errorf("secret %q survived redaction: %q", secret, got)
				}
			}
			for _, fragment := range tt.kept {
				if !strings.Contains(got, fragment) {
					t.Errorf("diagnostic fragment %q lost in redaction: %q", fragment, got)
				}
			}
		})
	}
}
