/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package breaker

import "time"

const (
	defaultMaxRequests      = 1
	defaultInterval         = 60 * time.Second
	defaultTimeout          = 30 * time.Second
	defaultFailureThreshold = 5
)

// Config represents storage circuit breaker configuration.
type Config struct {
	// MaxRequests is the number of requests allowed to pass through while half-open.
	MaxRequests uint32

	// Interval is the closed state cyclic period used to clear failure counts.
	Interval time.Duration

	// Timeout is the open state period after which the breaker becomes half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that trips the breaker.
	FailureThreshold uint32
}

type configProxy struct {
	MaxRequests      uint32 `yaml:"max_requests"`
	Interval         int    `yaml:"interval"`
	Timeout          int    `yaml:"timeout"`
	FailureThreshold uint32 `yaml:"failure_threshold"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
// Interval and timeout are expressed in seconds.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	c.MaxRequests = p.MaxRequests
	c.Interval = time.Duration(p.Interval) * time.Second
	c.Timeout = time.Duration(p.Timeout) * time.Second
	c.FailureThreshold = p.FailureThreshold
	c.setDefaults()
	return nil
}

func (c *Config) setDefaults() {
	if c.MaxRequests == 0 {
		c.MaxRequests = defaultMaxRequests
	}
	if c.Interval == 0 {
		c.Interval = defaultInterval
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = defaultFailureThreshold
	}
}
