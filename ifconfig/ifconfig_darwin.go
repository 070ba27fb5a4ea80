package ifconfig

import (
	"net"
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// Names returns the names of all interfaces.
func Names() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "listing interfaces failed")
	}

	names := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		names = append(names, iface.Name)
	}
	return names, nil
}

// Get returns the current state of the named interface.
func Get(ifname string) (*Info, error) {
	iface, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, errors.Wrapf(err, "interface %s", ifname)
	}

	return &Info{
		Name:    iface.Name,
		Index:   iface.Index,
		MTU:     iface.MTU,
		Up:      iface.Flags&net.FlagUp != 0,
		Running: iface.Flags&net.FlagRunning != 0,
	}, nil
}

// SetAddr assigns a point-to-point IPv4 address with itself as peer,
// using ifconfig(8). Requires root privileges.
func SetAddr(ifname string, addr net.IP, mask net.IPMask) error {
	if !IsIPv4(addr) {
		return syscall.EAFNOSUPPORT
	}

	ip := addr.To4().String()
	cmd := exec.Command("/sbin/ifconfig", ifname, "inet", ip, ip, "netmask", net.IP(mask).String())
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Errorf("ifconfig %s inet %s: %v (output: %s)", ifname, ip, err, strings.TrimSpace(string(out)))
	}
	return nil
}
