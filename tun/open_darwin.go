package tun

import (
	"golang.org/x/sys/unix"
)

const (
	sysprotoControl = 2 // SYSPROTO_CONTROL
	utunOptIfname   = 2 // UTUN_OPT_IFNAME
)

// darwinOpener ignores DevicePath and MTU, utun has neither.
type darwinOpener struct{}

var _ Opener = (*darwinOpener)(nil)

func newOpener(Config) Opener {
	return &darwinOpener{}
}

// Open connects to the utun kernel control with unit 0, which makes the
// kernel pick the next free utun<N>. Every failure after the socket has
// been created is reported as OpenFailure.
func (o *darwinOpener) Open() (h *Handle, err error) {
	fd, err := unix.Socket(unix.AF_SYSTEM, unix.SOCK_DGRAM, sysprotoControl)
	if err != nil {
		return nil, newError(ControlSocketOpenFailure, err, "socket(AF_SYSTEM)")
	}
	defer func() {
		if err != nil {
			unix.Close(fd)
		}
	}()

	info := &unix.CtlInfo{}
	copy(info.Name[:], UtunControlName)
	if err = unix.IoctlCtlInfo(fd, info); err != nil {
		return nil, newError(OpenFailure, err, "CTLIOCGINFO "+UtunControlName)
	}

	if err = unix.Connect(fd, &unix.SockaddrCtl{ID: info.Id, Unit: 0}); err != nil {
		return nil, newError(OpenFailure, err, "connect")
	}

	name, err := unix.GetsockoptString(fd, sysprotoControl, utunOptIfname)
	if err != nil {
		return nil, newError(OpenFailure, err, "getsockopt(UTUN_OPT_IFNAME)")
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		return nil, newError(OpenFailure, err, "fcntl(O_NONBLOCK)")
	}
	if _, err = unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		return nil, newError(OpenFailure, err, "fcntl(FD_CLOEXEC)")
	}

	logger.Infof("opened %s (fd %d)", name, fd)
	return newHandle(fd, name), nil
}
