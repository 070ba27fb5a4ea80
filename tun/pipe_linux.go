package tun

import (
	"golang.org/x/sys/unix"
)

// cloexecPipe returns a pipe with close-on-exec set on both ends.
func cloexecPipe() ([2]int, error) {
	var p [2]int
	err := unix.Pipe2(p[:], unix.O_CLOEXEC)
	return p, err
}
