package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/digineo/tun/tun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o600))
	return fname
}

func TestReadConfig(t *testing.T) {
	fname := writeConfig(t, `
address: 13.13.13.13
mtu: 1400
serialize_names: true
log_level: debug
`)
	c, err := readConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)

	cfg, err := c.tunConfig()
	require.NoError(t, err)
	assert.Equal(t, tun.Config{
		DevicePath:     tun.DevicePath,
		MTU:            1400,
		Address:        "13.13.13.13",
		Netmask:        tun.DefaultNetmask,
		SerializeNames: true,
	}, cfg)
}

func TestReadConfigJSON(t *testing.T) {
	// YAML is a superset of JSON, old config.json files keep working
	fname := writeConfig(t, `{"address": "10.1.2.3", "netmask": "255.255.255.0"}`)
	c, err := readConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "255.255.255.0", c.Netmask)
}

func TestReadConfigDefaults(t *testing.T) {
	c, err := readConfig("")
	require.NoError(t, err)

	cfg, err := c.tunConfig()
	require.NoError(t, err)
	assert.Equal(t, tun.DefaultConfig(), cfg)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := readConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = readConfig(writeConfig(t, "address: [1"))
	assert.ErrorContains(t, err, "parse config file")

	c, err := readConfig(writeConfig(t, "address: fd00::1"))
	require.NoError(t, err)
	_, err = c.tunConfig()
	assert.EqualError(t, err, "error validating config: config.address must be an IPv4 address: fd00::1")
}
