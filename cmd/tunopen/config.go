package main

import (
	"os"

	"github.com/digineo/tun/tun"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type config struct {
	Device         string `yaml:"device"`
	MTU            int    `yaml:"mtu"`
	Address        string `yaml:"address"`
	Netmask        string `yaml:"netmask"`
	SerializeNames bool   `yaml:"serialize_names"`
	LogLevel       string `yaml:"log_level"`
}

// readConfig loads fname. A missing file yields the defaults.
func readConfig(fname string) (*config, error) {
	cfg := &config{LogLevel: "info"}
	if fname == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}
	return cfg, nil
}

// tunConfig converts c into a validated tun.Config.
func (c *config) tunConfig() (tun.Config, error) {
	cfg := tun.Config{
		DevicePath:     c.Device,
		MTU:            c.MTU,
		Address:        c.Address,
		Netmask:        c.Netmask,
		SerializeNames: c.SerializeNames,
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "error validating config")
	}
	return cfg, nil
}
