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

import "time"

// PendingAuthorization is the ephemeral server-side state correlating an
// in-flight OAuth authorize call with its eventual callback. It is held in
// memory only, consumed exactly once, and never written to durable storage.
type PendingAuthorization struct {
	ClientID     string
	ClientSecret string
	Domain       string
	CreatedAt    time.Time
}
