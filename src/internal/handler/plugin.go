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

package handler

import (
	"net/http"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "plugin-api"
	serviceVersion = "1.0.0"
)

// PluginHandler serves the discovery surface: health, plugin metadata, the
// manifest and the OpenAPI document. The OpenAPI bytes are built and
// validated once at startup and served verbatim afterwards.
type PluginHandler struct {
	baseURL   string
	providers map[string]bool
	openAPI   []byte
}

func NewPluginHandler(baseURL string, providers map[string]bool, openAPI []byte) *PluginHandler {
	return &PluginHandler{baseURL: baseURL, providers: providers, openAPI: openAPI}
}

func (h *PluginHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Health)
	r.GET("/health", h.Health)
	plugin := r.Group("/plugin")
	{
		plugin.GET("/info", h.Info)
		plugin.GET("/manifest", h.Manifest)
		plugin.GET("/openapi.yaml", h.OpenAPI)
	}
}

// Health handles GET / and GET /health.
func (h *PluginHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// Info handles GET /plugin/info.
func (h *PluginHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PluginInfo{
		PluginName:  serviceName,
		Version:     serviceVersion,
		Description: "Forwards caller-supplied credentials to mail, text-generation, web-search and CRM providers.",
		Endpoints: map[string]string{
			"mail":   "/mail/send",
			"text":   "/text/generate, /text/continue, /text/revise",
			"search": "/search, /search/summarize",
			"crm":    "/crm/authorize, /crm/callback, /crm/query, /crm/create, /crm/update, /crm/execute-action",
		},
		Providers: h.providers,
	})
}

// Manifest handles GET /plugin/manifest.
func (h *PluginHandler) Manifest(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PluginManifest{
		SchemaVersion:       "v1",
		NameForHuman:        "Assistant Plugin API",
		NameForModel:        "assistant_plugin",
		DescriptionForHuman: "Send email, generate text, search the web and work with CRM records using your own credentials.",
		DescriptionForModel: "Stateless gateway to SMTP mail, OpenAI-compatible text generation, web search and a Salesforce-style CRM. Every request carries the caller's own credentials.",
		Auth:                dto.ManifestAuth{Type: "none"},
		API: dto.ManifestAPIRef{
			Type: "openapi",
			URL:  h.baseURL + "/plugin/openapi.yaml",
		},
		ContactEmail: "support@" + serviceName + ".local",
		LegalInfoURL: h.baseURL + "/",
	})
}

// OpenAPI handles GET /plugin/openapi.yaml.
func (h *PluginHandler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", h.openAPI)
}

// ProviderFlags converts the startup capability toggles into the discovery
// document's map form.
func ProviderFlags(mail, text, search, crm bool) map[string]bool {
	return map[string]bool{
		constants.ProviderMail:   mail,
		constants.ProviderText:   text,
		constants.ProviderSearch: search,
		constants.ProviderCRM:    crm,
	}
}
