package tun

import (
	"sync"

	"golang.org/x/sys/unix"
)

// Handle is an open TUN device. The descriptor is non-blocking and
// close-on-exec, and the interface disappears once it is closed.
type Handle struct {
	fd   int
	name string

	closeOnce sync.Once
	closeErr  error
}

func newHandle(fd int, name string) *Handle {
	return &Handle{fd: fd, name: boundName(name)}
}

// Fd returns the raw descriptor. It stays owned by the handle.
func (h *Handle) Fd() int {
	return h.fd
}

// Name returns the interface name.
func (h *Handle) Name() string {
	return h.name
}

// Close closes the descriptor, destroying the interface. Subsequent
// calls return the result of the first one.
func (h *Handle) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = unix.Close(h.fd)
	})
	return h.closeErr
}

// boundName cuts a kernel supplied name down to MaxNameLen bytes and
// drops anything after a NUL.
func boundName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == 0 {
			name = name[:i]
			break
		}
	}
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return name
}
