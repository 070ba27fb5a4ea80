package tun

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sys/unix"
)

// pairOpener hands out one end of a socket pair as device.
type pairOpener struct {
	remote int
	err    error
}

func (o *pairOpener) Open() (*Handle, error) {
	if o.err != nil {
		return nil, o.err
	}
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, err
	}
	unix.SetNonblock(fds[0], true)
	o.remote = fds[1]
	return newHandle(fds[0], "tun0"), nil
}

func newTestManager(t *testing.T, cfg Config, o Opener) *Manager {
	require.NoError(t, cfg.Validate())
	return &Manager{
		config:  cfg,
		opener:  o,
		setAddr: func(string, net.IP, net.IPMask) error {
			return nil
		},
	}
}

func TestManagerOpen(t *testing.T) {
	defer goleak.VerifyNone(t)

	o := &pairOpener{}
	called := make(chan struct{}, 16)

	var tunnel *Tunnel
	ready := make(chan struct{})
	tunnel, err := newTestManager(t, DefaultConfig(), o).Open(func() {
		<-ready
		drain(tunnel.Fd())
		called <- struct{}{}
	})
	require.NoError(t, err)
	close(ready)
	defer unix.Close(o.remote)

	assert.Equal(t, "tun0", tunnel.Name())
	assert.GreaterOrEqual(t, tunnel.Fd(), 0)

	_, err = unix.Write(o.remote, []byte("packet"))
	require.NoError(t, err)
	waitFor(t, called)

	require.NoError(t, tunnel.Close())
	waitFor(t, tunnel.Watcher().Done())
	assert.NoError(t, tunnel.Close(), "Close is idempotent")

	// the peer stays open, but nobody may be notified anymore
	_, err = unix.Write(o.remote, []byte("late"))
	require.NoError(t, err)
	select {
	case <-called:
		t.Fatal("callback invoked after Close")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManagerOpenFailure(t *testing.T) {
	openErr := &Error{Kind: DeviceOpenFailure, Err: unix.EACCES}
	m := newTestManager(t, DefaultConfig(), &pairOpener{err: openErr})

	tunnel, err := m.Open(func() {})
	assert.Nil(t, tunnel)
	assert.Equal(t, openErr, err)
	assert.EqualError(t, err, "could not open tun device -1: device open failed: "+unix.EACCES.Error())
}

func TestManagerAddress(t *testing.T) {
	defer goleak.VerifyNone(t)

	o := &pairOpener{}
	m := newTestManager(t, Config{Address: "13.13.13.13"}, o)

	var gotName string
	var gotIP net.IP
	var gotMask net.IPMask
	m.setAddr = func(name string, ip net.IP, mask net.IPMask) error {
		gotName, gotIP, gotMask = name, ip, mask
		return nil
	}

	tunnel, err := m.Open(func() {})
	require.NoError(t, err)
	defer unix.Close(o.remote)
	defer tunnel.Close()

	assert.Equal(t, "tun0", gotName)
	assert.Equal(t, "13.13.13.13", gotIP.String())
	assert.Equal(t, net.CIDRMask(32, 32), gotMask)
}

func TestManagerAddressFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	o := &pairOpener{}
	m := newTestManager(t, Config{Address: "13.13.13.13", Netmask: "255.255.255.0"}, o)
	m.setAddr = func(string, net.IP, net.IPMask) error {
		return errors.New("no such device")
	}

	tunnel, err := m.Open(func() {})
	assert.Nil(t, tunnel)
	require.Error(t, err)
	defer unix.Close(o.remote)

	assert.True(t, IsKind(err, AddressAssignFailure))
	assert.Equal(t, -7, err.(*Error).Code())
	assert.Contains(t, err.Error(), "assigning 13.13.13.13 to tun0: no such device")
}

func TestNewManagerInvalid(t *testing.T) {
	_, err := NewManager(Config{Address: "example.com"})
	assert.EqualError(t, err, "config.address must be an IPv4 address: example.com")
}
