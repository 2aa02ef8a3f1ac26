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
	"errors"
	"net/http"

	"plugin-api/src/internal/model"

	"github.com/gin-gonic/gin"
)

// FailureResponse is the uniform error envelope every endpoint returns.
type FailureResponse struct {
	Success      bool              `json:"success"`
	Error        string            `json:"error"`
	Code         model.FailureCode `json:"code,omitempty"`
	Hint         string            `json:"hint,omitempty"`
	HelpfulLinks []string          `json:"helpfulLinks,omitempty"`
}

// StatusForFailure maps a failure classification to its HTTP status:
// 400 for validation, 401 for authentication-classified failures,
// 500 for everything else.
func StatusForFailure(f *model.Failure) int {
	switch f.Code {
	case model.CodeValidation:
		return http.StatusBadRequest
	case model.CodeAuthFailed, model.CodeNotConnected:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondFailure writes the JSON failure envelope for err. Classified adapter
// failures pass through with their code and remediation metadata; anything
// else is logged server-side and converted to a generic provider error so an
// unexpected fault never leaks internals or crashes the request.
func RespondFailure(c *gin.Context, operation string, err error) {
	var failure *model.Failure
	if !errors.As(err, &failure) {
		LogError(operation, err)
		failure = model.NewFailure(model.CodeProviderError, "An unexpected error occurred while processing the request")
	}

	c.JSON(StatusForFailure(failure), FailureResponse{
		Success:      false,
		Error:        failure.Message,
		Code:         failure.Code,
		Hint:         failure.Hint,
		HelpfulLinks: failure.HelpfulLinks,
	})
}
