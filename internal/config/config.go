// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides the configuration of the index server.  Values
// start from Default, may be overridden by a YAML file, and are finally
// overridden by command-line flags in the main package.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 50051
	DefaultMetricsAddr = ":9090"
)

// Config holds the settings of the index server.
type Config struct {
	// Port is the gRPC listen port.
	Port int `yaml:"port"`

	// MetricsAddr is the listen address of the Prometheus endpoint.  An empty
	// address disables it.
	MetricsAddr string `yaml:"metrics_addr"`

	// AutoRebalance rebalances the tree after an insertion or removal leaves
	// it unbalanced.
	AutoRebalance bool `yaml:"auto_rebalance"`

	// Keys are the initial keys of the tree in strictly ascending order.
	Keys []int64 `yaml:"keys"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		MetricsAddr: DefaultMetricsAddr,
	}
}

// Load reads the YAML file at the given path on top of the default
// configuration and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Port < 0 || 65535 < c.Port {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	for i := 1; i < len(c.Keys); i++ {
		if c.Keys[i] <= c.Keys[i-1] {
			return errors.New("keys must be in strictly ascending order")
		}
	}
	return nil
}
