/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"fmt"

	"github.com/ortuman/rabber/transport"
	"github.com/ortuman/rabber/xmpp/jid"
)

const (
	defaultDomain        = "localhost"
	defaultMaxStanzaSize = 32768
)

// Config represents C2S server configuration.
type Config struct {
	Domain        string
	MaxStanzaSize int
	Transport     transport.Config
}

type configProxy struct {
	Domain        string           `yaml:"domain"`
	MaxStanzaSize int              `yaml:"max_stanza_size"`
	Transport     transport.Config `yaml:"transport"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (cfg *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{Transport: transport.DefaultConfig()}
	if err := unmarshal(&p); err != nil {
		return err
	}
	cfg.Domain = p.Domain
	if len(cfg.Domain) == 0 {
		cfg.Domain = defaultDomain
	}
	// validate server domain
	if _, err := jid.New("", cfg.Domain, "", false); err != nil {
		return fmt.Errorf("c2s.Config: invalid domain: %s", cfg.Domain)
	}
	cfg.MaxStanzaSize = p.MaxStanzaSize
	if cfg.MaxStanzaSize == 0 {
		cfg.MaxStanzaSize = defaultMaxStanzaSize
	}
	cfg.Transport = p.Transport
	return nil
}

// DefaultConfig returns a C2S configuration initialized with default values.
func DefaultConfig() Config {
	return Config{
		Domain:        defaultDomain,
		MaxStanzaSize: defaultMaxStanzaSize,
		Transport:     transport.DefaultConfig(),
	}
}
