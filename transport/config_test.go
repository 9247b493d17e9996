/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	require.Nil(t, yaml.Unmarshal([]byte("{}"), &cfg))
	require.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Values(t *testing.T) {
	s := `
bind_addr: 127.0.0.1
port: 5223
keep_alive: 30
debug_tee: true
rate_limit:
  rate: 65536
`
	cfg := Config{}
	require.Nil(t, yaml.Unmarshal([]byte(s), &cfg))
	require.Equal(t, "127.0.0.1", cfg.BindAddr)
	require.Equal(t, 5223, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.KeepAlive)
	require.True(t, cfg.DebugTee)
	require.Equal(t, 65536, cfg.RateLimit.Rate)
	require.Equal(t, 65536, cfg.RateLimit.Burst)

	require.NotNil(t, yaml.Unmarshal([]byte("rate_limit: {rate: -1}"), &cfg))
}
