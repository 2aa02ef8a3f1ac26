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

package model

import "fmt"

// FailureCode classifies adapter failures for HTTP status mapping and
// machine-readable error responses.
type FailureCode string

const (
	CodeValidation          FailureCode = "VALIDATION_ERROR"
	CodeCredentialsMissing  FailureCode = "CREDENTIALS_MISSING"
	CodeAuthFailed          FailureCode = "AUTH_FAILED"
	CodeProviderUnavailable FailureCode = "PROVIDER_UNAVAILABLE"
	CodeInvalidModel        FailureCode = "INVALID_MODEL"
	CodeProviderError       FailureCode = "PROVIDER_ERROR"
	CodeZeroResults         FailureCode = "ZERO_RESULTS"
	CodeNotConnected        FailureCode = "NOT_CONNECTED"
)

// Failure is the tagged error result every adapter returns on its normal
// failure paths. Hint and HelpfulLinks are populated only for classified
// authentication failures that carry remediation guidance.
type Failure struct {
	Code         FailureCode
	Message      string
	Hint         string
	HelpfulLinks []string
}

func (f *Failure) Error() string {
	return f.Message
}

// NewFailure creates a failure with the given classification and message.
func NewFailure(code FailureCode, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// NewFailuref creates a failure with a formatted message.
func NewFailuref(code FailureCode, format string, args ...interface{}) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// MissingField reports a required request field that is absent or empty.
// Routed as HTTP 400 before any adapter is invoked.
func MissingField(name string) *Failure {
	return &Failure{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Missing required field: %s", name),
	}
}
