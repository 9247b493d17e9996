/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package app

import (
	"bytes"
	"os"

	"github.com/ortuman/rabber/c2s"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/storage"
	"gopkg.in/yaml.v2"
)

// debugConfig represents debug server configuration.
type debugConfig struct {
	Port int `yaml:"port"`
}

// Config represents a global configuration.
type Config struct {
	PIDFile string
	Debug   debugConfig
	Logger  log.Config
	Storage storage.Config
	C2S     c2s.Config
}

type configProxy struct {
	PIDFile string         `yaml:"pid_path"`
	Debug   debugConfig    `yaml:"debug"`
	Logger  log.Config     `yaml:"logger"`
	Storage storage.Config `yaml:"storage"`
	C2S     c2s.Config     `yaml:"c2s"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (cfg *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{
		Logger: log.Config{Level: log.InfoLevel},
		C2S:    c2s.DefaultConfig(),
	}
	if err := unmarshal(&p); err != nil {
		return err
	}
	cfg.PIDFile = p.PIDFile
	cfg.Debug = p.Debug
	cfg.Logger = p.Logger
	cfg.Storage = p.Storage
	cfg.C2S = p.C2S
	return nil
}

// FromFile loads default global configuration from
// a specified file.
func (cfg *Config) FromFile(configFile string) error {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

// FromBuffer loads default global configuration from
// a specified byte buffer.
func (cfg *Config) FromBuffer(buf *bytes.Buffer) error {
	return yaml.Unmarshal(buf.Bytes(), cfg)
}
