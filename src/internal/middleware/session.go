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

package middleware

import (
	"plugin-api/src/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "sessionID"

// SessionMiddleware assigns each caller a session identity cookie used to
// correlate an OAuth authorize call with its callback. The cookie carries
// only a random id; all sensitive state stays server-side.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(constants.SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(constants.SessionCookieName, sid, 0, "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// GetSessionFromContext returns the caller's session id set by
// SessionMiddleware.
func GetSessionFromContext(c *gin.Context) (string, bool) {
	sid, ok := c.Get(sessionContextKey)
	if !ok {
		return "", false
	}
	s, ok := sid.(string)
	return s, ok && s != ""
}
