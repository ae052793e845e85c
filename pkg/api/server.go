/*
 * Copyright 2025 Wildsight Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api exposes the coordinator's snapshot over a local HTTP surface,
// the boundary a host platform integrates against.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wildsight/revealsync/pkg/entity"
	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
)

// Syncer is the coordinator surface the API consumes.
type Syncer interface {
	Snapshot() *models.Snapshot
	RefreshNow(ctx context.Context)
	GetMetrics() map[string]interface{}
}

// ImageStore serves cached photo bytes for a device.
type ImageStore interface {
	Bytes(deviceID string) ([]byte, time.Time, bool)
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	ListenAddr string
	Debug      bool
}

// Server is the host-facing HTTP API.
type Server struct {
	config     ServerConfig
	syncer     Syncer
	images     ImageStore
	logger     logger.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the API server and its routes.
func NewServer(config ServerConfig, syncer Syncer, images ImageStore, log logger.Logger) *Server {
	if config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: config,
		syncer: syncer,
		images: images,
		logger: log,
		router: router,
	}

	router.Use(s.loggerMiddleware())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/cameras", s.handleListCameras)
		api.GET("/cameras/:id", s.handleGetCamera)
		api.GET("/cameras/:id/image", s.handleGetImage)
		api.POST("/refresh", s.handleRefresh)
		api.GET("/health", s.handleHealth)
	}
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", s.config.ListenAddr).Msg("Starting API server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("API server error")
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info().Msg("Stopping API server")

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleListCameras(c *gin.Context) {
	snap := s.syncer.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot published yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cycle_id": snap.CycleID,
		"taken":    snap.Taken,
		"cameras":  entity.FromSnapshot(snap),
	})
}

func (s *Server) handleGetCamera(c *gin.Context) {
	snap := s.syncer.Snapshot()

	entry, ok := snap.Entry(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown camera"})
		return
	}

	c.JSON(http.StatusOK, entity.FromEntry(entry))
}

func (s *Server) handleGetImage(c *gin.Context) {
	id := c.Param("id")

	if _, ok := s.syncer.Snapshot().Entry(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown camera"})
		return
	}

	body, fetched, ok := s.images.Bytes(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached image for camera"})
		return
	}

	c.Header("Last-Modified", fetched.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, "image/jpeg", body)
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.syncer.RefreshNow(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh requested"})
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.syncer.Snapshot()

	health := gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"metrics": s.syncer.GetMetrics(),
	}

	if snap != nil {
		health["last_cycle_id"] = snap.CycleID
		health["last_cycle_taken"] = snap.Taken
		health["devices"] = len(snap.Devices)
	} else {
		health["status"] = "starting"
	}

	c.JSON(http.StatusOK, health)
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
