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
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

func TestPluginAPIDocumentValidates(t *testing.T) {
	out, err := PluginAPIDocument("http://localhost:8080")
	if err != nil {
		t.Fatalf("PluginAPIDocument returned error: %v", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(out)
	if err != nil {
		t.Fatalf("served document does not load: %v", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		t.Fatalf("served document does not validate: %v", err)
	}

	wantPaths := []string{
		"/mail/send",
		"/text/generate", "/text/continue", "/text/revise",
		"/search", "/search/summarize",
		"/crm/authorize", "/crm/query", "/crm/create", "/crm/update", "/crm/execute-action",
	}
	for _, path := range wantPaths {
		item := doc.Paths.Find(path)
		if item == nil {
			t.Errorf("document missing path %s", path)
			continue
		}
		if item.Post == nil {
			t.Errorf("path %s missing POST operation", path)
		}
	}

	if len(doc.Servers) == 0 || doc.Servers[0].URL != "http://localhost:8080" {
		t.Errorf("expected configured server URL, got %v", doc.Servers)
	}
}
