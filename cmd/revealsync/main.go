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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/wildsight/revealsync/pkg/api"
	"github.com/wildsight/revealsync/pkg/config"
	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/media"
	"github.com/wildsight/revealsync/pkg/reveal"
	"github.com/wildsight/revealsync/pkg/sync"
)

const shutdownTimeout = 30 * time.Second

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/revealsync/revealsync.json", "Path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfgLoader := config.NewConfig(nil)

	var cfg config.AppConfig

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	mainLogger, err := logger.NewComponent("revealsync", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := reveal.NewClient(reveal.ClientConfig{
		BaseURL:         cfg.APIBaseURL,
		CognitoURL:      cfg.CognitoURL,
		CognitoClientID: cfg.CognitoClientID,
		Logger:          mainLogger,
	})

	syncConfig := sync.DefaultConfig()
	if cfg.PollInterval > 0 {
		syncConfig.PollInterval = time.Duration(cfg.PollInterval)
	}

	if cfg.MaxConcurrency > 0 {
		syncConfig.MaxConcurrency = cfg.MaxConcurrency
	}

	sessions := reveal.NewSessionManager(client, cfg.Credential(), reveal.RenewMargin(syncConfig.PollInterval), mainLogger)
	mediaCache := media.NewCache(nil, mainLogger)
	metrics := sync.NewInMemoryMetrics(mainLogger)

	coordinator, err := sync.NewCoordinator(
		syncConfig,
		sessions,
		client,
		client,
		mainLogger,
		sync.WithMetrics(metrics),
		sync.WithMediaStore(mediaCache),
	)
	if err != nil {
		return fmt.Errorf("failed to create coordinator: %w", err)
	}

	server := api.NewServer(api.ServerConfig{ListenAddr: cfg.ListenAddr, Debug: logConfig.Debug}, coordinator, mediaCache, mainLogger)

	if err := coordinator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start coordinator: %w", err)
	}

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	mainLogger.Info().Str("listen_addr", cfg.ListenAddr).Msg("revealsync started")

	<-ctx.Done()
	mainLogger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		mainLogger.Error().Err(err).Msg("API server shutdown error")
	}

	if err := coordinator.Stop(shutdownCtx); err != nil {
		mainLogger.Error().Err(err).Msg("Coordinator shutdown error")
	}

	return nil
}
