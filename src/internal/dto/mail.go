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

import (
	"strings"

	"plugin-api/src/internal/model"
)

// SMTPCredentials is the caller-supplied credential envelope for one mail
// send. It lives for the duration of a single request and is never logged
// or persisted.
type SMTPCredentials struct {
	Server      string `json:"server"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FromAddress string `json:"fromAddress,omitempty"`
}

// SendEmailRequest is the validated input for POST /mail/send.
type SendEmailRequest struct {
	To              string           `json:"to"`
	Subject         string           `json:"subject"`
	Body            string           `json:"body"`
	IsHTML          bool             `json:"isHtml"`
	SMTPCredentials *SMTPCredentials `json:"smtpCredentials"`
}

// Validate checks every required field, treating empty strings as missing.
func (r *SendEmailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return model.MissingField("to")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return model.MissingField("subject")
	}
	if strings.TrimSpace(r.Body) == "" {
		return model.MissingField("body")
	}
	if r.SMTPCredentials == nil {
		return model.MissingField("smtpCredentials")
	}
	if strings.TrimSpace(r.SMTPCredentials.Server) == "" {
		return model.MissingField("smtpCredentials.server")
	}
	if r.SMTPCredentials.Port <= 0 {
		return model.MissingField("smtpCredentials.port")
	}
	if strings.TrimSpace(r.SMTPCredentials.Username) == "" {
		return model.MissingField("smtpCredentials.username")
	}
	if strings.TrimSpace(r.SMTPCredentials.Password) == "" {
		return model.MissingField("smtpCredentials.password")
	}
	return nil
}

// From returns the effective envelope sender, defaulting to the username.
func (c *SMTPCredentials) From() string {
	if strings.TrimSpace(c.FromAddress) != "" {
		return strings.TrimSpace(c.FromAddress)
	}
	return strings.TrimSpace(c.Username)
}

// SendEmailResponse is the success payload for POST /mail/send.
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
