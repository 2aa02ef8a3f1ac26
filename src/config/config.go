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

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"DEBUG"`

	// Server configurations
	Port string `envconfig:"PORT" default:"8080"`

	// BaseURL is the externally visible origin of this server. The OAuth
	// callback URL handed to the CRM provider is derived from it.
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	// Providers toggles each adapter on or off at startup.
	Providers Providers `envconfig:"PROVIDERS"`

	// Outbound provider endpoints and timeouts
	Generation Generation `envconfig:"GENERATION"`
	Search     Search     `envconfig:"SEARCH"`
	OAuth      OAuth      `envconfig:"OAUTH"`

	// ProviderTimeout bounds every outbound call (seconds).
	ProviderTimeout int `envconfig:"PROVIDER_TIMEOUT" default:"30"`

	// TLS configurations; the server runs plain HTTP when unset.
	TLS TLS `envconfig:"TLS"`
}

// Providers holds the per-adapter capability flags resolved once at startup.
type Providers struct {
	Mail   bool `envconfig:"MAIL_ENABLED" default:"true"`
	Text   bool `envconfig:"TEXT_ENABLED" default:"true"`
	Search bool `envconfig:"SEARCH_ENABLED" default:"true"`
	CRM    bool `envconfig:"CRM_ENABLED" default:"true"`
}

// Generation holds text-generation provider configuration.
type Generation struct {
	BaseURL string `envconfig:"BASE_URL" default:"https://api.openai.com"`
}

// Search holds web-search provider configuration.
type Search struct {
	BaseURL string `envconfig:"BASE_URL" default:"https://html.duckduckgo.com"`
}

// OAuth holds the CRM authorization flow configuration.
type OAuth struct {
	// StateSecret signs the state parameter carried through the provider
	// redirect. Change it in production.
	StateSecret string `envconfig:"STATE_SECRET" default:"plugin-api-state-secret-change-in-production"`

	// SessionTTL bounds how long a pending authorization may wait for its
	// callback (seconds).
	SessionTTL int `envconfig:"SESSION_TTL" default:"600"`
}

// TLS holds TLS certificate configuration
type TLS struct {
	CertFile string `envconfig:"CERT_FILE" default:""`
	KeyFile  string `envconfig:"KEY_FILE" default:""`
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server
// configuration, populated from environment variables. It uses sync.Once so
// the initialization logic is executed only once, making it safe for
// concurrent use. If there is an error during initialization, the function
// will panic.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance = &Server{}
		err = envconfig.Process("", settingInstance)
		if err == nil {
			err = validateConfig(settingInstance)
		}
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// validateConfig checks invariants envconfig tags cannot express.
func validateConfig(cfg *Server) error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("BASE_URL must not be empty")
	}
	if cfg.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %d", cfg.ProviderTimeout)
	}
	if cfg.OAuth.SessionTTL <= 0 {
		return fmt.Errorf("OAUTH_SESSION_TTL must be positive, got %d", cfg.OAuth.SessionTTL)
	}
	if (cfg.TLS.CertFile == "") != (cfg.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}
