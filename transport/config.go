/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"errors"
	"time"
)

const (
	defaultBindAddr  = "0.0.0.0"
	defaultPort      = 5222
	defaultKeepAlive = 120 * time.Second
)

// RateLimitConfig represents a transport read rate limit.
// A zero rate disables limiting.
type RateLimitConfig struct {
	Rate  int `yaml:"rate"`
	Burst int `yaml:"burst"`
}

// Config represents a socket transport configuration.
type Config struct {
	BindAddr  string
	Port      int
	KeepAlive time.Duration
	DebugTee  bool
	RateLimit RateLimitConfig
}

type configProxy struct {
	BindAddr  string          `yaml:"bind_addr"`
	Port      int             `yaml:"port"`
	KeepAlive int             `yaml:"keep_alive"`
	DebugTee  bool            `yaml:"debug_tee"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	if p.RateLimit.Rate < 0 || p.RateLimit.Burst < 0 {
		return errors.New("transport.Config: rate limit values must be non negative")
	}
	c.BindAddr = p.BindAddr
	if len(c.BindAddr) == 0 {
		c.BindAddr = defaultBindAddr
	}
	c.Port = p.Port
	if c.Port == 0 {
		c.Port = defaultPort
	}
	c.KeepAlive = time.Duration(p.KeepAlive) * time.Second
	if c.KeepAlive == 0 {
		c.KeepAlive = defaultKeepAlive
	}
	c.DebugTee = p.DebugTee
	c.RateLimit = p.RateLimit
	if c.RateLimit.Rate > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = c.RateLimit.Rate
	}
	return nil
}

// DefaultConfig returns a transport configuration initialized with default values.
func DefaultConfig() Config {
	return Config{
		BindAddr:  defaultBindAddr,
		Port:      defaultPort,
		KeepAlive: defaultKeepAlive,
	}
}
