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

package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"plugin-api/src/config"
	"plugin-api/src/internal/handler"
	"plugin-api/src/internal/middleware"
	"plugin-api/src/internal/observability"
	"plugin-api/src/internal/service"
	"plugin-api/src/internal/session"
	"plugin-api/src/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sweepInterval paces the background cleanup of abandoned pending
// authorizations.
const sweepInterval = time.Minute

type Server struct {
	router *gin.Engine
	store  *session.Store
	cfg    *config.Server
}

// StartPluginAPIServer creates a new server instance with all dependencies
// initialized. The server itself is stateless apart from the in-memory
// pending-authorization store.
func StartPluginAPIServer(cfg *config.Server) (*Server, error) {
	timeout := time.Duration(cfg.ProviderTimeout) * time.Second

	// The OpenAPI document is built and validated once; a malformed
	// description is a startup failure, not a runtime one.
	openAPIDoc, err := utils.PluginAPIDocument(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}

	store := session.NewStore(time.Duration(cfg.OAuth.SessionTTL) * time.Second)

	// Initialize services
	mailService := service.NewMailService(timeout)
	textService := service.NewTextService(cfg.Generation.BaseURL, timeout)
	searchProvider := service.NewDuckDuckGoProvider(cfg.Search.BaseURL, timeout)
	searchService := service.NewSearchService(searchProvider, textService)
	oauthService := service.NewOAuthService(store, cfg.OAuth.StateSecret, cfg.BaseURL, timeout)
	crmService := service.NewCRMService(timeout)

	// Initialize handlers
	mailHandler := handler.NewMailHandler(mailService, cfg.Providers.Mail)
	textHandler := handler.NewTextHandler(textService, cfg.Providers.Text)
	searchHandler := handler.NewSearchHandler(searchService, cfg.Providers.Search, cfg.Providers.Text)
	crmHandler := handler.NewCRMHandler(oauthService, crmService, cfg.Providers.CRM)
	pluginHandler := handler.NewPluginHandler(cfg.BaseURL,
		handler.ProviderFlags(cfg.Providers.Mail, cfg.Providers.Text, cfg.Providers.Search, cfg.Providers.CRM),
		openAPIDoc)

	// Setup router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())

	// Configure and apply CORS middleware first
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.SessionMiddleware())
	router.Use(observability.RequestMetrics())

	// Register routes
	mailHandler.RegisterRoutes(router)
	textHandler.RegisterRoutes(router)
	searchHandler.RegisterRoutes(router)
	crmHandler.RegisterRoutes(router)
	pluginHandler.RegisterRoutes(router)
	router.GET("/metrics", observability.Handler())

	log.Printf("[INFO] Providers enabled: mail=%t text=%t search=%t crm=%t",
		cfg.Providers.Mail, cfg.Providers.Text, cfg.Providers.Search, cfg.Providers.CRM)

	return &Server{router: router, store: store, cfg: cfg}, nil
}

// Start runs the HTTP listener. TLS is used when both certificate paths are
// configured; otherwise the server speaks plain HTTP. The pending
// authorization sweep runs for the lifetime of the listener.
func (s *Server) Start(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	go s.sweepLoop()

	address := fmt.Sprintf(":%s", port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.TLS.CertFile != "" && s.cfg.TLS.KeyFile != "" {
		log.Printf("Starting HTTPS server on https://localhost:%s", port)
		return httpServer.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
	}

	log.Printf("Starting HTTP server on http://localhost:%s", port)
	return httpServer.ListenAndServe()
}

func (s *Server) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.store.Sweep()
	}
}

// GetRouter returns the gin router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
