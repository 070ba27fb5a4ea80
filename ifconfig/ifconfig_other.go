//go:build !linux && !darwin

package ifconfig

import (
	"errors"
	"net"
)

var notImplemented = errors.New("not implemented")

func Names() ([]string, error) {
	return nil, notImplemented
}

func Get(ifname string) (*Info, error) {
	return nil, notImplemented
}

func SetAddr(ifname string, addr net.IP, mask net.IPMask) error {
	return notImplemented
}
