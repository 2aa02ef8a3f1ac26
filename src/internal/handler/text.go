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
	"net/http"

	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

// TextGenerator is the adapter surface the text endpoints need.
type TextGenerator interface {
	Generate(ctx context.Context, req *dto.GenerateTextRequest) (*dto.GenerateTextResponse, error)
	Continue(ctx context.Context, req *dto.ContinueTextRequest) (*dto.ContinueTextResponse, error)
	Revise(ctx context.Context, req *dto.ReviseTextRequest) (*dto.ReviseTextResponse, error)
}

type TextHandler struct {
	textService TextGenerator
	enabled     bool
}

func NewTextHandler(textService TextGenerator, enabled bool) *TextHandler {
	return &TextHandler{textService: textService, enabled: enabled}
}

func (h *TextHandler) RegisterRoutes(r *gin.Engine) {
	text := r.Group("/text")
	{
		text.POST("/generate", h.GenerateText)
		text.POST("/continue", h.ContinueText)
		text.POST("/revise", h.ReviseText)
	}
}

// GenerateText handles POST /text/generate.
func (h *TextHandler) GenerateText(c *gin.Context) {
	if !h.available(c, "TextHandler.GenerateText") {
		return
	}

	var req dto.GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "TextHandler.GenerateText",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "TextHandler.GenerateText", err)
		return
	}

	resp, err := h.textService.Generate(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "TextHandler.GenerateText", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ContinueText handles POST /text/continue.
func (h *TextHandler) ContinueText(c *gin.Context) {
	if !h.available(c, "TextHandler.ContinueText") {
		return
	}

	var req dto.ContinueTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "TextHandler.ContinueText",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "TextHandler.ContinueText", err)
		return
	}

	resp, err := h.textService.Continue(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "TextHandler.ContinueText", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReviseText handles POST /text/revise.
func (h *TextHandler) ReviseText(c *gin.Context) {
	if !h.available(c, "TextHandler.ReviseText") {
		return
	}

	var req dto.ReviseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "TextHandler.ReviseText",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "TextHandler.ReviseText", err)
		return
	}

	resp, err := h.textService.Revise(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "TextHandler.ReviseText", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TextHandler) available(c *gin.Context, operation string) bool {
	if h.enabled {
		return true
	}
	utils.RespondFailure(c, operation,
		model.NewFailure(model.CodeProviderUnavailable, "The text-generation provider is disabled on this server"))
	return false
}
