package tun

import (
	"github.com/digineo/tun/ifconfig"
	"golang.org/x/sys/unix"
)

// linuxSys is the set of system calls the Linux opener depends on.
type linuxSys interface {
	Open(path string, mode int, perm uint32) (int, error)
	Socket(domain, typ, proto int) (int, error)
	Close(fd int) error
	IoctlIfreq(fd int, req uint, ifr *unix.Ifreq) error
	IoctlSetInt(fd int, req uint, value int) error
	SetNonblock(fd int, nonblocking bool) error
	FcntlInt(fd uintptr, cmd, arg int) (int, error)
	InterfaceNames() ([]string, error)
}

// unixSys executes the real system calls.
type unixSys struct{}

var _ linuxSys = unixSys{}

func (unixSys) Open(path string, mode int, perm uint32) (int, error) {
	return unix.Open(path, mode, perm)
}

func (unixSys) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (unixSys) Close(fd int) error {
	return unix.Close(fd)
}

func (unixSys) IoctlIfreq(fd int, req uint, ifr *unix.Ifreq) error {
	return unix.IoctlIfreq(fd, req, ifr)
}

func (unixSys) IoctlSetInt(fd int, req uint, value int) error {
	return unix.IoctlSetInt(fd, req, value)
}

func (unixSys) SetNonblock(fd int, nonblocking bool) error {
	return unix.SetNonblock(fd, nonblocking)
}

func (unixSys) FcntlInt(fd uintptr, cmd, arg int) (int, error) {
	return unix.FcntlInt(fd, cmd, arg)
}

func (unixSys) InterfaceNames() ([]string, error) {
	return ifconfig.Names()
}
