//go:build unix && !linux

package tun

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// cloexecPipe returns a pipe with close-on-exec set on both ends.
// Without pipe2 the flag is set afterwards, holding ForkLock so no
// child can inherit the descriptors in between.
func cloexecPipe() ([2]int, error) {
	var p [2]int

	syscall.ForkLock.RLock()
	defer syscall.ForkLock.RUnlock()

	if err := unix.Pipe(p[:]); err != nil {
		return p, err
	}
	unix.CloseOnExec(p[0])
	unix.CloseOnExec(p[1])
	return p, nil
}
