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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level      string      `json:"level" yaml:"level"`
	Debug      bool        `json:"debug" yaml:"debug"`
	Output     string      `json:"output" yaml:"output"`
	TimeFormat string      `json:"time_format" yaml:"time_format"`
	Console    bool        `json:"console" yaml:"console"`
	OTel       *OTelConfig `json:"otel,omitempty" yaml:"otel,omitempty"`
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// New builds a Logger from cfg and installs it as the zerolog global.
func New(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, err := cfg.level()
	if err != nil {
		return nil, err
	}

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	zl := zerolog.New(cfg.writer()).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = zl

	return Wrap(zl), nil
}

func (c *Config) level() (zerolog.Level, error) {
	if c.Debug {
		return zerolog.DebugLevel, nil
	}

	if c.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(c.Level)
}

func (c *Config) writer() io.Writer {
	var output io.Writer = os.Stdout

	if c.Output == "stderr" {
		output = os.Stderr
	}

	if c.Console {
		return zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return output
}
