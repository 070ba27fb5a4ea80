package tun

import (
	"net"

	"github.com/digineo/tun/ifconfig"
)

// Opener creates TUN devices. There is one implementation per platform.
type Opener interface {
	Open() (*Handle, error)
}

// Manager opens TUN devices and watches them for readability.
type Manager struct {
	config  Config
	opener  Opener
	setAddr func(ifname string, ip net.IP, mask net.IPMask) error
}

// NewManager validates config and selects the opener for this platform.
func NewManager(config Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		config:  config,
		opener:  newOpener(config),
		setAddr: ifconfig.SetAddr,
	}, nil
}

// Tunnel is an open TUN device with an active readiness watch.
type Tunnel struct {
	*Handle
	watcher *Watcher
}

// Watcher returns the watch delivering readiness for this tunnel.
func (t *Tunnel) Watcher() *Watcher {
	return t.watcher
}

// Close stops the watch, waits for a running callback to return and
// closes the device. It must not be called from within the callback.
func (t *Tunnel) Close() error {
	t.watcher.Stop()
	<-t.watcher.Done()
	return t.Handle.Close()
}

// Open opens a device, assigns the configured address and calls fn each
// time the device becomes readable. fn has to do the reading itself.
func (m *Manager) Open(fn func()) (*Tunnel, error) {
	h, err := m.opener.Open()
	if err != nil {
		logger.Errorf("%v", err)
		return nil, err
	}

	if ip, mask := m.config.addr(); ip != nil {
		if err = m.setAddr(h.Name(), ip, mask); err != nil {
			h.Close()
			err = newError(AddressAssignFailure, err, "assigning "+m.config.Address+" to "+h.Name())
			logger.Errorf("%v", err)
			return nil, err
		}
	}

	w, err := Watch(h.Fd(), fn)
	if err != nil {
		h.Close()
		return nil, err
	}

	return &Tunnel{Handle: h, watcher: w}, nil
}

// Open opens a device with the default configuration. See Manager.Open.
func Open(fn func()) (*Tunnel, error) {
	m, err := NewManager(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return m.Open(fn)
}
