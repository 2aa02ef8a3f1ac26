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

// HealthResponse is the service health document served at / and /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// PluginInfo describes the plugin surface for discovery clients.
type PluginInfo struct {
	PluginName  string            `json:"plugin_name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Providers   map[string]bool   `json:"providers"`
}

// PluginManifest is the OpenPlugin-style manifest document.
type PluginManifest struct {
	SchemaVersion       string         `json:"schema_version"`
	NameForHuman        string         `json:"name_for_human"`
	NameForModel        string         `json:"name_for_model"`
	DescriptionForHuman string         `json:"description_for_human"`
	DescriptionForModel string         `json:"description_for_model"`
	Auth                ManifestAuth   `json:"auth"`
	API                 ManifestAPIRef `json:"api"`
	ContactEmail        string         `json:"contact_email"`
	LegalInfoURL        string         `json:"legal_info_url"`
}

// ManifestAuth declares the manifest auth scheme.
type ManifestAuth struct {
	Type string `json:"type"`
}

// ManifestAPIRef points at the machine-readable API description.
type ManifestAPIRef struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
