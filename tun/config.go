package tun

import (
	"net"

	"github.com/pkg/errors"
)

const (
	// DevicePath is the path to the Linux TUN clone device.
	DevicePath = "/dev/net/tun"

	// DefaultMTU is applied to every new Linux interface.
	DefaultMTU = 1500

	// DefaultNetmask is used when an address is configured without a netmask.
	DefaultNetmask = "255.255.255.255"

	// UtunControlName is the macOS kernel control providing utun interfaces.
	UtunControlName = "com.apple.net.utun_control"

	// MaxNameLen is the number of usable characters in an interface name.
	MaxNameLen = 9
)

// Config controls how a Manager opens devices.
type Config struct {
	// DevicePath is the clone device (Linux only).
	DevicePath string

	// MTU is set on the new interface (Linux only, best effort).
	MTU int

	// Address and Netmask are optional IPv4 dotted quads. If Address is
	// set, the interface gets a point-to-point address after opening.
	Address string
	Netmask string

	// SerializeNames holds a process wide lock while picking a name and
	// allocating the interface. Opens from other processes still race.
	SerializeNames bool
}

// DefaultConfig returns the configuration used by the package level Open.
func DefaultConfig() Config {
	return Config{
		DevicePath: DevicePath,
		MTU:        DefaultMTU,
	}
}

// Validate fills in defaults and checks the address settings.
func (c *Config) Validate() error {
	if c.DevicePath == "" {
		c.DevicePath = DevicePath
	}
	if c.MTU == 0 {
		c.MTU = DefaultMTU
	}
	if c.MTU < 0 {
		return errors.Errorf("config.mtu must be positive, got %d", c.MTU)
	}

	if c.Address == "" {
		if c.Netmask != "" {
			return errors.New("config.netmask requires config.address")
		}
		return nil
	}
	if c.Netmask == "" {
		c.Netmask = DefaultNetmask
	}
	if !isIPv4(c.Address) {
		return errors.Errorf("config.address must be an IPv4 address: %s", c.Address)
	}
	if !isIPv4(c.Netmask) {
		return errors.Errorf("config.netmask must be an IPv4 address: %s", c.Netmask)
	}
	return nil
}

// addr returns the parsed address and mask, or nil if none is configured.
func (c *Config) addr() (net.IP, net.IPMask) {
	if c.Address == "" {
		return nil, nil
	}
	return net.ParseIP(c.Address).To4(), net.IPMask(net.ParseIP(c.Netmask).To4())
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && ip.To4().String() == s
}
