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
	"fmt"
	"log"
	"runtime/debug"
	"strings"
)

// LogError logs an error with stack trace information. Error text is redacted
// before logging so credential material can never reach a log line.
func LogError(message string, err error) {
	if err != nil {
		log.Printf("[ERROR] %s: %s\n", message, Redact(err.Error()))
		log.Printf("[STACK] %s\n", debug.Stack())
	}
}

// LogErrorWithContext logs an error with additional context and stack trace.
func LogErrorWithContext(message string, err error, context map[string]interface{}) {
	if err != nil {
		contextStr := ""
		for k, v := range context {
			contextStr += fmt.Sprintf("%s=%v ", k, Redact(fmt.Sprintf("%v", v)))
		}
		log.Printf("[ERROR] %s: %s | Context: %s\n", message, Redact(err.Error()), contextStr)
		log.Printf("[STACK] %s\n", debug.Stack())
	}
}

// LogInfo logs informational messages
func LogInfo(message string) {
	log.Printf("[INFO] %s\n", message)
}

// LogWarning logs warning messages
func LogWarning(message string) {
	log.Printf("[WARN] %s\n", message)
}

// redactionMarkers are substrings whose following value portion must never be
// logged. Provider error text occasionally echoes request parameters back.
var redactionMarkers = []string{
	"password=", "apikey=", "api_key=", "access_token=",
	"client_secret=", "authorization: bearer ",
}

// Redact masks the value following any known credential marker in s. The rest
// of the text is preserved so provider errors stay diagnosable.
func Redact(s string) string {
	lower := strings.ToLower(s)
	for _, marker := range redactionMarkers {
		idx := 0
		for {
			at := strings.Index(lower[idx:], marker)
			if at < 0 {
				break
			}
			start := idx + at + len(marker)
			end := start
			for end < len(s) && !strings.ContainsAny(string(s[end]), " &\"'\n\t") {
				end++
			}
			s = s[:start] + "[REDACTED]" + s[end:]
			lower = strings.ToLower(s)
			idx = start + len("[REDACTED]")
		}
	}
	return s
}
