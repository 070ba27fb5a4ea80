package tun

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// allocMtx guards name selection and TUNSETIFF when Config.SerializeNames
// is set.
var allocMtx sync.Mutex

type linuxOpener struct {
	cfg Config
	sys linuxSys
}

var _ Opener = (*linuxOpener)(nil)

func newOpener(cfg Config) Opener {
	return &linuxOpener{cfg: cfg, sys: unixSys{}}
}

// Open allocates a new tun<N> interface. Every descriptor acquired on
// the way is closed again if a step fails.
func (o *linuxOpener) Open() (h *Handle, err error) {
	fd, err := o.sys.Open(o.cfg.DevicePath, unix.O_RDWR, 0)
	if err != nil {
		return nil, newError(DeviceOpenFailure, err, "open "+o.cfg.DevicePath)
	}
	defer func() {
		if err != nil {
			o.sys.Close(fd)
		}
	}()

	name, err := o.allocate(fd)
	if err != nil {
		return nil, err
	}

	if err = o.sys.IoctlSetInt(fd, unix.TUNSETPERSIST, 0); err != nil {
		return nil, newError(PersistDisableFailure, err, "TUNSETPERSIST "+name)
	}

	sock, err := o.sys.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, newError(ControlSocketCreationFailure, err, "socket(AF_INET)")
	}
	defer o.sys.Close(sock)

	o.configure(sock, name)

	if err = o.sys.SetNonblock(fd, true); err != nil {
		return nil, newError(NonBlockingSetFailure, err, "fcntl(O_NONBLOCK)")
	}
	if _, err = o.sys.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		return nil, newError(CloseOnExecFailure, err, "fcntl(FD_CLOEXEC)")
	}

	logger.Infof("opened %s (fd %d)", name, fd)
	return newHandle(fd, name), nil
}

// allocate requests a TUN interface for fd and returns the name the
// kernel confirmed, which need not be the one requested.
func (o *linuxOpener) allocate(fd int) (string, error) {
	if o.cfg.SerializeNames {
		allocMtx.Lock()
		defer allocMtx.Unlock()
	}

	names, err := o.sys.InterfaceNames()
	if err != nil {
		logger.Debugf("listing interfaces failed, assuming none: %v", err)
		names = nil
	}
	want := NextName(names)

	ifr, err := unix.NewIfreq(want)
	if err != nil {
		return "", newError(InterfaceAllocationFailure, err, "invalid name "+want)
	}
	ifr.SetUint16(unix.IFF_TUN)

	if err = o.sys.IoctlIfreq(fd, unix.TUNSETIFF, ifr); err != nil {
		return "", newError(InterfaceAllocationFailure, err, "TUNSETIFF "+want)
	}

	name := ifr.Name()
	if name == "" {
		return "", newError(InterfaceAllocationFailure, errors.New("kernel returned an empty name"), "TUNSETIFF "+want)
	}
	return name, nil
}

// configure sets the MTU and brings the interface up. Both ioctls are
// best effort: failures are logged and otherwise ignored.
func (o *linuxOpener) configure(sock int, name string) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		logger.Debugf("configuring %s skipped: %v", name, err)
		return
	}

	ifr.SetUint32(uint32(o.cfg.MTU))
	if err := o.sys.IoctlIfreq(sock, unix.SIOCSIFMTU, ifr); err != nil {
		logger.Debugf("setting mtu %d on %s failed: %v", o.cfg.MTU, name, err)
	}

	ifr.SetUint16(unix.IFF_UP | unix.IFF_RUNNING)
	if err := o.sys.IoctlIfreq(sock, unix.SIOCSIFFLAGS, ifr); err != nil {
		logger.Debugf("setting flags on %s failed: %v", name, err)
	}
}
