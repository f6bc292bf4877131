/*
 * Copyright 2025 Carver Automation Corporation.
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

// Package config loads service configuration from a file, a .env file and
// prefixed environment variables, then validates it.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
)

var errInvalidConfigPtr = errors.New("config must be a non-nil pointer")

// DefaultEnvPrefix is prepended to every configuration environment variable.
const DefaultEnvPrefix = "NBZX_"

// ConfigLoader fills dst from one source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configuration structs that check themselves.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	fileLoader ConfigLoader
	envLoader  ConfigLoader
	dotenvPath string
	logger     logger.Logger
}

// Option customizes a Config.
type Option func(*Config)

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envLoader = NewEnvConfigLoader(c.logger, prefix)
	}
}

// WithDotenv names the .env file read before the environment is consulted.
// An empty path disables it.
func WithDotenv(path string) Option {
	return func(c *Config) {
		c.dotenvPath = path
	}
}

// NewConfig initializes a new Config with file, .env and environment loaders.
func NewConfig(log logger.Logger, opts ...Option) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	c := &Config{
		fileLoader: &FileConfigLoader{logger: log},
		envLoader:  NewEnvConfigLoader(log, DefaultEnvPrefix),
		dotenvPath: ".env",
		logger:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate layers the sources in order: file (when path is set),
// .env, environment. Later sources win. The result is then validated.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if cfg == nil {
		return errInvalidConfigPtr
	}

	if path != "" {
		if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
			return err
		}
	}

	if err := c.loadDotenv(); err != nil {
		return err
	}

	if err := c.envLoader.Load(ctx, "", cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

// loadDotenv exports the .env file without overriding variables that are
// already set. A missing file is not an error.
func (c *Config) loadDotenv() error {
	if c.dotenvPath == "" {
		return nil
	}

	if _, err := os.Stat(c.dotenvPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(c.dotenvPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", c.dotenvPath, err)
	}

	c.logger.Debug().Str("path", c.dotenvPath).Msg("Loaded environment file")

	return nil
}
