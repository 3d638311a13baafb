// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package server

import (
	"fmt"

	"github.com/google/pairgen/pkg/config"
)

type Config struct {
	// TCP address to serve HTTP requests on (e.g. "localhost:50000").
	HTTP string `json:"http"`
	// Generation of one suite is aborted with 503 after this many seconds (0 means no limit).
	TimeoutSec int `json:"timeout_sec"`
	// Requests with more parameters are rejected (0 means no limit).
	MaxParameters int `json:"max_parameters"`
	// Requests with a parameter with more values are rejected (0 means no limit).
	MaxValues int `json:"max_values"`
	// Requests that need more parameter value pairs to be covered are rejected (0 means no limit).
	// Generation memory grows linearly with the number of pairs.
	MaxPairs int `json:"max_pairs"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP:          "localhost:56741",
		TimeoutSec:    30,
		MaxParameters: 100,
		MaxValues:     1000,
		MaxPairs:      1000000,
	}
}

// LoadConfig loads the config file on top of the defaults.
// An empty filename returns the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		if err := config.LoadFile(filename, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.HTTP == "" {
		return fmt.Errorf("config param http is empty")
	}
	if cfg.TimeoutSec < 0 {
		return fmt.Errorf("config param timeout_sec is negative: %v", cfg.TimeoutSec)
	}
	if cfg.MaxParameters < 0 {
		return fmt.Errorf("config param max_parameters is negative: %v", cfg.MaxParameters)
	}
	if cfg.MaxValues < 0 {
		return fmt.Errorf("config param max_values is negative: %v", cfg.MaxValues)
	}
	if cfg.MaxPairs < 0 {
		return fmt.Errorf("config param max_pairs is negative: %v", cfg.MaxPairs)
	}
	return nil
}
