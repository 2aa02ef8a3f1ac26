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

// Searcher is the adapter surface the search endpoints need.
type Searcher interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	SearchAndSummarize(ctx context.Context, req *dto.SearchSummarizeRequest) (*dto.SearchSummarizeResponse, error)
}

type SearchHandler struct {
	searchService Searcher
	enabled       bool
	textEnabled   bool
}

// NewSearchHandler builds the search endpoints. The composite summarize
// operation also depends on the text-generation capability, so it carries
// that toggle as well.
func NewSearchHandler(searchService Searcher, enabled, textEnabled bool) *SearchHandler {
	return &SearchHandler{searchService: searchService, enabled: enabled, textEnabled: textEnabled}
}

func (h *SearchHandler) RegisterRoutes(r *gin.Engine) {
	search := r.Group("/search")
	{
		search.POST("", h.Search)
		search.POST("/summarize", h.SearchAndSummarize)
	}
}

// Search handles POST /search.
func (h *SearchHandler) Search(c *gin.Context) {
	if !h.enabled {
		utils.RespondFailure(c, "SearchHandler.Search",
			model.NewFailure(model.CodeProviderUnavailable, "The web-search provider is disabled on this server"))
		return
	}

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "SearchHandler.Search",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "SearchHandler.Search", err)
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "SearchHandler.Search", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchAndSummarize handles POST /search/summarize, the composite chaining
// search into text generation.
func (h *SearchHandler) SearchAndSummarize(c *gin.Context) {
	if !h.enabled {
		utils.RespondFailure(c, "SearchHandler.SearchAndSummarize",
			model.NewFailure(model.CodeProviderUnavailable, "The web-search provider is disabled on this server"))
		return
	}
	if !h.textEnabled {
		utils.RespondFailure(c, "SearchHandler.SearchAndSummarize",
			model.NewFailure(model.CodeProviderUnavailable, "The text-generation provider is disabled on this server"))
		return
	}

	var req dto.SearchSummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "SearchHandler.SearchAndSummarize",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "SearchHandler.SearchAndSummarize", err)
		return
	}

	resp, err := h.searchService.SearchAndSummarize(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "SearchHandler.SearchAndSummarize", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
