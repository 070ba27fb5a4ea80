// Package ifconfig inspects network interfaces and assigns addresses
// to them.
package ifconfig

import (
	"net"
)

// Info is a snapshot of an interface's state.
type Info struct {
	Name    string
	Index   int
	MTU     int
	Up      bool
	Running bool
}

// IsIPv4 reports whether ip is an IPv4 address, including the IPv4
// mapped IPv6 form.
func IsIPv4(ip net.IP) bool {
	return ip.To4() != nil
}
