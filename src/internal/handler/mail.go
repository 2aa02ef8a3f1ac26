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

// MailSender is the adapter surface the mail endpoints need.
type MailSender interface {
	Send(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error)
}

type MailHandler struct {
	mailService MailSender
	enabled     bool
}

func NewMailHandler(mailService MailSender, enabled bool) *MailHandler {
	return &MailHandler{mailService: mailService, enabled: enabled}
}

func (h *MailHandler) RegisterRoutes(r *gin.Engine) {
	mail := r.Group("/mail")
	{
		mail.POST("/send", h.SendEmail)
	}
}

// SendEmail handles POST /mail/send. Validation failures short-circuit before
// the adapter is touched, so no SMTP connection is attempted for a malformed
// request.
func (h *MailHandler) SendEmail(c *gin.Context) {
	if !h.enabled {
		utils.RespondFailure(c, "MailHandler.SendEmail",
			model.NewFailure(model.CodeProviderUnavailable, "The mail provider is disabled on this server"))
		return
	}

	var req dto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, "MailHandler.SendEmail",
			model.NewFailure(model.CodeValidation, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondFailure(c, "MailHandler.SendEmail", err)
		return
	}

	resp, err := h.mailService.Send(c.Request.Context(), &req)
	if err != nil {
		utils.RespondFailure(c, "MailHandler.SendEmail", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
