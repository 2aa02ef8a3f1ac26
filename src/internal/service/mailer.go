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

package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"plugin-api/src/internal/constants"
	"plugin-api/src/internal/dto"
	"plugin-api/src/internal/model"
	"plugin-api/src/internal/observability"
)

// Dialer abstracts net.Dialer to simplify testing.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// MailOption configures the behaviour of the mail service.
type MailOption func(*MailService)

// WithMailDialer swaps the network dialer used to establish SMTP connections.
func WithMailDialer(d Dialer) MailOption {
	return func(s *MailService) {
		if d != nil {
			s.dialer = d
		}
	}
}

// WithMailTLSConfig overrides the TLS configuration used when negotiating
// STARTTLS. ServerName is filled in per call when empty.
func WithMailTLSConfig(cfg *tls.Config) MailOption {
	return func(s *MailService) {
		s.tlsConfig = cfg
	}
}

// WithMailHelloName customises the EHLO identity presented to the server.
func WithMailHelloName(name string) MailOption {
	return func(s *MailService) {
		if strings.TrimSpace(name) != "" {
			s.helloName = strings.TrimSpace(name)
		}
	}
}

// MailService sends one message per call over a caller-supplied SMTP
// credential envelope. Connections are opened, authenticated and closed
// within the scope of a single Send; nothing is pooled or reused.
type MailService struct {
	dialer    Dialer
	tlsConfig *tls.Config
	helloName string
	now       func() time.Time
}

// NewMailService constructs the mail adapter.
func NewMailService(timeout time.Duration, opts ...MailOption) *MailService {
	s := &MailService{
		dialer:    &net.Dialer{Timeout: timeout},
		helloName: "localhost",
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Send delivers the message described by req. Exactly one outbound delivery
// attempt is made per call; credentials are used in-memory only.
func (s *MailService) Send(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	creds := req.SMTPCredentials
	if creds == nil || strings.TrimSpace(creds.Server) == "" || creds.Port <= 0 ||
		strings.TrimSpace(creds.Username) == "" || strings.TrimSpace(creds.Password) == "" {
		return nil, model.NewFailure(model.CodeCredentialsMissing, "SMTP credentials not configured")
	}

	message := buildMailMessage(req, creds.From(), s.now())

	start := time.Now()
	err := s.deliver(ctx, creds, req.To, message)
	if err != nil {
		observability.RecordProviderCall(constants.ProviderMail, "error", time.Since(start))
		return nil, err
	}
	observability.RecordProviderCall(constants.ProviderMail, "success", time.Since(start))

	return &dto.SendEmailResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent successfully to %s", req.To),
	}, nil
}

func (s *MailService) deliver(ctx context.Context, creds *dto.SMTPCredentials, to string, message []byte) error {
	addr := net.JoinHostPort(creds.Server, strconv.Itoa(creds.Port))
	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, creds.Server)
	if err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}
	defer client.Close()

	if err := client.Hello(s.helloName); err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}

	// The password never crosses the wire in cleartext: a server that cannot
	// upgrade the connection is refused before AUTH is attempted.
	if ok, _ := client.Extension("STARTTLS"); !ok {
		return model.NewFailure(model.CodeProviderError,
			"SMTP server does not support STARTTLS; refusing to authenticate over a cleartext connection")
	}
	if err := client.StartTLS(s.sessionTLSConfig(creds.Server)); err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}

	auth := smtp.PlainAuth("", creds.Username, creds.Password, creds.Server)
	if err := client.Auth(auth); err != nil {
		return classifyAuthFailure(err, creds.Server)
	}

	if err := client.Mail(creds.From()); err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}
	if err := client.Rcpt(to); err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}

	writer, err := client.Data()
	if err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return model.NewFailure(model.CodeProviderError, err.Error())
	}
	if err := writer.Close(); err != nil {
		return model.NewFailure(model.CodeProviderError, err.Error())
	}

	_ = client.Quit()
	return nil
}

func (s *MailService) sessionTLSConfig(host string) *tls.Config {
	if s.tlsConfig != nil {
		cfg := s.tlsConfig.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = host
		}
		return cfg
	}
	return &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}
}

func buildMailMessage(req *dto.SendEmailRequest, from string, now time.Time) []byte {
	contentType := "text/plain; charset=UTF-8"
	if req.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	var buf bytes.Buffer
	writeHeader := func(key, value string) {
		clean := strings.ReplaceAll(value, "\r", " ")
		clean = strings.ReplaceAll(clean, "\n", " ")
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(strings.TrimSpace(clean))
		buf.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", req.To)
	writeHeader("Subject", req.Subject)
	writeHeader("Date", now.UTC().Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", contentType)
	buf.WriteString("\r\n")
	buf.WriteString(normalizeBody(req.Body))

	return buf.Bytes()
}

func normalizeBody(body string) string {
	if body == "" {
		return ""
	}
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.ReplaceAll(normalized, "\n", "\r\n")
}

// mfaIndicators are substrings of SMTP auth rejections that point at
// multi-factor authentication or app-password requirements rather than a
// plain wrong password.
var mfaIndicators = []string{
	"application-specific password",
	"app password",
	"5.7.8",
	"5.7.9",
	"badcredentials",
	"534",
}

// providerHelpLinks maps common SMTP host substrings to provider
// documentation for generating app passwords.
var providerHelpLinks = map[string][]string{
	"gmail": {
		"https://support.google.com/accounts/answer/185833",
		"https://myaccount.google.com/apppasswords",
	},
	"google": {
		"https://support.google.com/accounts/answer/185833",
		"https://myaccount.google.com/apppasswords",
	},
	"outlook": {
		"https://support.microsoft.com/en-us/account-billing/manage-app-passwords-for-two-step-verification-d6dc8c6d-4bf7-4851-ad95-6d07799387e9",
	},
	"office365": {
		"https://support.microsoft.com/en-us/account-billing/manage-app-passwords-for-two-step-verification-d6dc8c6d-4bf7-4851-ad95-6d07799387e9",
	},
	"yahoo": {
		"https://help.yahoo.com/kb/SLN15241.html",
	},
}

// classifyAuthFailure turns an SMTP login rejection into an AUTH_FAILED
// failure. When the provider's response text matches known multi-factor
// indicators the failure additionally carries a remediation hint and
// provider-specific help links.
func classifyAuthFailure(err error, server string) *model.Failure {
	failure := model.NewFailure(model.CodeAuthFailed, err.Error())

	text := strings.ToLower(err.Error())
	for _, indicator := range mfaIndicators {
		if strings.Contains(text, indicator) {
			failure.Hint = "The mail provider rejected the password. If the account uses multi-factor authentication, generate an app password and use it instead of the account password."
			failure.HelpfulLinks = helpLinksForServer(server)
			break
		}
	}
	return failure
}

func helpLinksForServer(server string) []string {
	host := strings.ToLower(server)
	for key, links := range providerHelpLinks {
		if strings.Contains(host, key) {
			return links
		}
	}
	// Unrecognized host: point at the most common providers' app-password docs.
	return []string{
		"https://support.google.com/accounts/answer/185833",
		"https://support.microsoft.com/en-us/account-billing/manage-app-passwords-for-two-step-verification-d6dc8c6d-4bf7-4851-ad95-6d07799387e9",
	}
}
