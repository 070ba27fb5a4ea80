package ifconfig

import (
	"net"
	"syscall"

	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// Names returns the names of all links.
func Names() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, errors.Wrap(err, "listing links failed")
	}

	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Attrs().Name)
	}
	return names, nil
}

// Get returns the current state of the named link.
func Get(ifname string) (*Info, error) {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return nil, errors.Wrapf(err, "link %s", ifname)
	}

	attrs := link.Attrs()
	return &Info{
		Name:    attrs.Name,
		Index:   attrs.Index,
		MTU:     attrs.MTU,
		Up:      attrs.RawFlags&unix.IFF_UP != 0,
		Running: attrs.RawFlags&unix.IFF_RUNNING != 0,
	}, nil
}

// SetAddr replaces the IPv4 address of the named link.
func SetAddr(ifname string, addr net.IP, mask net.IPMask) error {
	if !IsIPv4(addr) {
		return syscall.EAFNOSUPPORT
	}

	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return errors.Wrapf(err, "link %s", ifname)
	}

	ipnet := &net.IPNet{IP: addr.To4(), Mask: mask}
	if err = netlink.AddrReplace(link, &netlink.Addr{IPNet: ipnet}); err != nil {
		return errors.Wrapf(err, "adding %s to %s failed", ipnet, ifname)
	}
	return nil
}
