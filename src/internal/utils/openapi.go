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
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// PluginAPIDocument builds the OpenAPI description served at
// /plugin/openapi.yaml, validates it with kin-openapi, and returns it as
// YAML. Built once at startup; an invalid document fails server start rather
// than surfacing at request time.
func PluginAPIDocument(serverURL string) ([]byte, error) {
	doc := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Plugin API",
			"description": "Credential-forwarding plugin endpoints for mail, text generation, web search and CRM",
			"version":     "1.0.0",
		},
		"servers": []interface{}{
			map[string]interface{}{"url": serverURL},
		},
		"paths": map[string]interface{}{
			"/mail/send": postOperation("sendEmail", "Send an email via caller-supplied SMTP credentials",
				[]string{"to", "subject", "body", "smtpCredentials"},
				map[string]interface{}{
					"to":              stringSchema("Recipient email address"),
					"subject":         stringSchema("Email subject"),
					"body":            stringSchema("Email body content"),
					"isHtml":          map[string]interface{}{"type": "boolean", "description": "Whether the body is HTML formatted", "default": false},
					"smtpCredentials": map[string]interface{}{"type": "object", "description": "SMTP server, port, username, password and optional fromAddress"},
				}),
			"/text/generate": postOperation("generateText", "Generate text from a prompt",
				[]string{"prompt", "apiKey"},
				map[string]interface{}{
					"prompt": stringSchema("Instruction for the generation"),
					"length": stringSchema("short, medium or long"),
					"model":  stringSchema("Model identifier"),
					"apiKey": stringSchema("Caller's generation API key"),
				}),
			"/text/continue": postOperation("continueText", "Continue a prior piece of text",
				[]string{"priorText", "apiKey"},
				map[string]interface{}{
					"priorText": stringSchema("Text to continue"),
					"apiKey":    stringSchema("Caller's generation API key"),
				}),
			"/text/revise": postOperation("reviseText", "Revise a prior piece of text",
				[]string{"priorText", "apiKey"},
				map[string]interface{}{
					"priorText": stringSchema("Text to revise"),
					"focus":     stringSchema("Named revision focus"),
					"apiKey":    stringSchema("Caller's generation API key"),
				}),
			"/search": postOperation("search", "Run a web search",
				[]string{"query"},
				map[string]interface{}{
					"query":      stringSchema("Search query"),
					"maxResults": map[string]interface{}{"type": "integer", "description": "Maximum result count"},
					"region":     stringSchema("Region code"),
				}),
			"/search/summarize": postOperation("searchAndSummarize", "Search the web and summarize the results",
				[]string{"query", "apiKey"},
				map[string]interface{}{
					"query":  stringSchema("Search query"),
					"focus":  stringSchema("Optional summary focus"),
					"apiKey": stringSchema("Caller's generation API key"),
				}),
			"/crm/authorize": postOperation("crmAuthorize", "Start the CRM OAuth authorization-code flow",
				[]string{"clientId", "clientSecret"},
				map[string]interface{}{
					"clientId":     stringSchema("Connected app client id"),
					"clientSecret": stringSchema("Connected app client secret"),
					"domain":       stringSchema("production or sandbox"),
				}),
			"/crm/query": postOperation("crmQuery", "Execute a SOQL query",
				[]string{"soql", "accessToken", "instanceUrl"},
				map[string]interface{}{
					"soql":        stringSchema("Query string, passed verbatim"),
					"accessToken": stringSchema("OAuth access token"),
					"instanceUrl": stringSchema("CRM instance URL"),
				}),
			"/crm/create": postOperation("crmCreate", "Create a CRM record",
				[]string{"entityType", "fields", "accessToken", "instanceUrl"},
				map[string]interface{}{
					"entityType":  stringSchema("Target entity type"),
					"fields":      map[string]interface{}{"type": "object", "description": "Field map for the new record"},
					"accessToken": stringSchema("OAuth access token"),
					"instanceUrl": stringSchema("CRM instance URL"),
				}),
			"/crm/update": postOperation("crmUpdate", "Update a CRM record",
				[]string{"entityType", "recordId", "fields", "accessToken", "instanceUrl"},
				map[string]interface{}{
					"entityType":  stringSchema("Target entity type"),
					"recordId":    stringSchema("Record identifier"),
					"fields":      map[string]interface{}{"type": "object", "description": "Fields to update"},
					"accessToken": stringSchema("OAuth access token"),
					"instanceUrl": stringSchema("CRM instance URL"),
				}),
			"/crm/execute-action": postOperation("crmExecuteAction", "Invoke a named CRM action",
				[]string{"actionName", "accessToken", "instanceUrl"},
				map[string]interface{}{
					"actionName":  stringSchema("Action to invoke"),
					"parameters":  map[string]interface{}{"type": "object", "description": "Action parameters"},
					"recordId":    stringSchema("Optional record identifier"),
					"accessToken": stringSchema("OAuth access token"),
					"instanceUrl": stringSchema("CRM instance URL"),
				}),
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI document: %w", err)
	}

	loader := openapi3.NewLoader()
	parsed, err := loader.LoadFromData(out)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := parsed.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("OpenAPI document is invalid: %w", err)
	}

	return out, nil
}

func stringSchema(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func postOperation(operationID, summary string, required []string, properties map[string]interface{}) map[string]interface{} {
	requiredList := make([]interface{}, 0, len(required))
	for _, field := range required {
		requiredList = append(requiredList, field)
	}

	return map[string]interface{}{
		"post": map[string]interface{}{
			"operationId": operationID,
			"summary":     summary,
			"requestBody": map[string]interface{}{
				"required": true,
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{
						"schema": map[string]interface{}{
							"type":       "object",
							"required":   requiredList,
							"properties": properties,
						},
					},
				},
			},
			"responses": map[string]interface{}{
				"200": responseRef("Operation succeeded"),
				"400": responseRef("Missing required field"),
				"401": responseRef("Authentication failed"),
				"500": responseRef("Provider error"),
			},
		},
	}
}

func responseRef(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"success": map[string]interface{}{"type": "boolean"},
					},
				},
			},
		},
	}
}
