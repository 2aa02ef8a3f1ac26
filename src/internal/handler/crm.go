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
	"context"
	"html/template"
	"net/http"

	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/middleware"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

// CRMAuthorizer runs the OAuth authorization-code flow.
type CRMAuthorizer interface {
	BeginAuthorization(sid string, req *dto.CRMAuthorizeRequest) (*dto.CRMAuthorizeResponse, error)
	CompleteAuthorization(ctx context.Context, code, state string) (*dto.CRMConnection, error)
}

// CRMClient executes authenticated CRM data operations.
type CRMClient interface {
	Query(ctx context.Context, req *dto.CRMQueryRequest) (*dto.CRMQueryResponse, error)
	Create(ctx context.Context, req *dto.CRMCreateRequest) (*dto.CRMCreateResponse, error)
	Update(ctx context.Context, req *dto.CRMUpdateRequest) (*dto.CRMUpdateResponse, error)
	ExecuteAction(ctx context.Context, req *dto.CRMExecuteActionRequest) (*dto.CRMExecuteActionResponse, error)
}

type CRMHandler struct {
	oauthService CRMAuthorizer
	crmService   CRMClient
	enabled      bool
}

func NewCRMHandler(oauthService CRMAuthorizer, crmService CRMClient, enabled bool) *CRMHandler {
	return &CRMHandler{oauthService: oauthService, crmService: crmService, enabled: enabled}
}

func (h *CRMHandler) RegisterRoutes(r *gin.Engine) {
	crm := r.Group("/crm")
	{
		crm.POST("/authorize", h.Authorize)
		crm.GET("/callback", h.Callback)
		crm.POST("/query", h.Query)
		crm.POST("/create", h.Create)
		crm.POST("/update", h.Update)
		crm.POST("/execute-action", h.ExecuteAction)
	}
}

// Authorize handles POST /crm/authorize: it parks the caller's client
// credentials against its session and returns the provider URL to visit.
func (h *CRMHandler) Authorize(c *gin.Context) {
	if !h.available(c, "CRMHandler.Authorize") {
		return
	}

	var req dto.CRMAuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "CRMHandler.Authorize",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "CRMHandler.Authorize", err)
		return
	}

	sid, ok := middleware.GetSessionFromContext(c)
	if !ok {
		utils.RespondFailure(c, "CRMHandler.Authorize",
			model.NewFailure(model.CodeProviderError, "No caller session is available for this request"))
		return
	}

	resp, err := h.oauthService.BeginAuthorization(sid, &req)
	if err != nil {
		utils.RespondFailure(c, "CRMHandler.Authorize", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Callback handles GET /crm/callback, the provider redirect at the end of the
// grant. It is opened in the caller's browser, so the outcome is rendered as
// HTML rather than the JSON envelope.
func (h *CRMHandler) Callback(c *gin.Context) {
	if !h.enabled {
		h.renderCallback(c, http.StatusServiceUnavailable, callbackView{
			Title:  "CRM provider disabled",
			Detail: "The CRM provider is disabled on this server.",
		})
		return
	}

	if errCode := c.Query("error"); errCode != "" {
		detail := c.Query("error_description")
		if detail == "" {
			detail = errCode
		}
		h.renderCallback(c, http.StatusBadRequest, callbackView{
			Title:  "Authorization was not granted",
			Detail: detail,
		})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.renderCallback(c, http.StatusBadRequest, callbackView{
			Title:  "Invalid callback",
			Detail: "The provider redirect is missing its code or state parameter.",
		})
		return
	}

	conn, err := h.oauthService.CompleteAuthorization(c.Request.Context(), code, state)
	if err != nil {
		utils.LogError("CRMHandler.Callback", err)
		h.renderCallback(c, http.StatusBadRequest, callbackView{
			Title:  "Authorization failed",
			Detail: err.Error(),
		})
		return
	}

	h.renderCallback(c, http.StatusOK, callbackView{
		Title:        "Connected",
		Detail:       "Authorization completed. Copy the values below into your client; this server keeps no record of them.",
		AccessToken:  conn.AccessToken,
		InstanceURL:  conn.InstanceURL,
		RefreshToken: conn.RefreshToken,
	})
}

// Query handles POST /crm/query.
func (h *CRMHandler) Query(c *gin.Context) {
	if !h.available(c, "CRMHandler.Query") {
		return
	}

	var req dto.CRMQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "CRMHandler.Query",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "CRMHandler.Query", err)
		return
	}

	resp, err := h.crmService.Query(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "CRMHandler.Query", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create handles POST /crm/create.
func (h *CRMHandler) Create(c *gin.Context) {
	if !h.available(c, "CRMHandler.Create") {
		return
	}

	var req dto.CRMCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "CRMHandler.Create",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "CRMHandler.Create", err)
		return
	}

	resp, err := h.crmService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "CRMHandler.Create", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles POST /crm/update.
func (h *CRMHandler) Update(c *gin.Context) {
	if !h.available(c, "CRMHandler.Update") {
		return
	}

	var req dto.CRMUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "CRMHandler.Update",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "CRMHandler.Update", err)
		return
	}

	resp, err := h.crmService.Update(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "CRMHandler.Update", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExecuteAction handles POST /crm/execute-action.
func (h *CRMHandler) ExecuteAction(c *gin.Context) {
	if !h.available(c, "CRMHandler.ExecuteAction") {
		return
	}

	var req dto.CRMExecuteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "CRMHandler.ExecuteAction",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "CRMHandler.ExecuteAction", err)
		return
	}

	resp, err := h.crmService.ExecuteAction(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "CRMHandler.ExecuteAction", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CRMHandler) available(c *gin.Context, operation string) bool {
	if h.enabled {
		return true
	}
	utils.RespondFailure(c, operation,
		model.NewFailure(model.CodeProviderUnavailable, "The CRM provider is disabled on this server"))
	return false
}

// callbackView feeds the browser-facing callback page.
type callbackView struct {
	Title        string
	Detail       string
	AccessToken  string
	InstanceURL  string
	RefreshToken string
}

var callbackTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; max-width: 40em; margin: 4em auto; padding: 0 1em; }
    code { display: block; background: #f4f4f4; padding: 0.6em; margin: 0.5em 0; word-break: break-all; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.Detail}}</p>
  {{if .AccessToken}}
  <p><strong>Access token</strong></p>
  <code>{{.AccessToken}}</code>
  <p><strong>Instance URL</strong></p>
  <code>{{.InstanceURL}}</code>
  {{if .RefreshToken}}
  <p><strong>Refresh token</strong></p>
  <code>{{.RefreshToken}}</code>
  {{end}}
  <p>You can close this window.</p>
  {{end}}
</body>
</html>
`))

func (h *CRMHandler) renderCallback(c *gin.Context, status int, view callbackView) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := callbackTemplate.Execute(c.Writer, view); err != nil {
		utils.LogError("CRMHandler.Callback", err)
	}
}
