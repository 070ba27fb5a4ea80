package tun

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var (
	// ErrDescriptorClosed ends a watch whose descriptor was closed underneath it.
	ErrDescriptorClosed = errors.New("descriptor closed")

	// ErrHangup ends a watch whose descriptor reported an error or hangup.
	ErrHangup = errors.New("descriptor hung up")
)

// Watcher polls a descriptor for read readiness and calls a function for
// every readiness report. Calls never overlap. The callback is expected
// to drain the descriptor, otherwise poll reports it again right away.
type Watcher struct {
	fd     int
	fn     func()
	onExit func()

	wake     [2]int // self-pipe, written by Stop
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	err      error
}

// Watch starts watching fd and calls fn whenever it is readable.
// Stop must be called to release the watcher.
func Watch(fd int, fn func()) (*Watcher, error) {
	if fn == nil {
		return nil, errors.New("callback must not be nil")
	}
	w, err := newWatcher(fd)
	if err != nil {
		return nil, err
	}
	w.fn = fn
	go w.loop()
	return w, nil
}

// Notify is like Watch, but sends a signal on the returned channel
// instead of calling a function. Signals carry no data and may be
// spurious. The channel is closed once the watcher has stopped.
func Notify(fd int) (*Watcher, <-chan struct{}, error) {
	w, err := newWatcher(fd)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan struct{})
	w.fn = func() {
		select {
		case ch <- struct{}{}:
		case <-w.quit:
		}
	}
	w.onExit = func() { close(ch) }

	go w.loop()
	return w, ch, nil
}

func newWatcher(fd int) (*Watcher, error) {
	if fd < 0 {
		return nil, errors.Errorf("invalid descriptor %d", fd)
	}

	p, err := cloexecPipe()
	if err != nil {
		return nil, errors.Wrap(err, "creating wake pipe failed")
	}

	return &Watcher{
		fd:   fd,
		wake: p,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

// Stop ends the watch. It does not wait for a running callback, use
// Done for that. Stop may be called from within the callback.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.quit)
		unix.Write(w.wake[1], []byte{0})
		unix.Close(w.wake[1])
	})
}

// Done is closed when the watch has ended and no callback is running.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Err returns why the watch ended: nil after Stop, otherwise a poll
// error, ErrDescriptorClosed or ErrHangup. Only valid after Done.
func (w *Watcher) Err() error {
	select {
	case <-w.done:
		return w.err
	default:
		return nil
	}
}

func (w *Watcher) stopped() bool {
	select {
	case <-w.quit:
		return true
	default:
		return false
	}
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer unix.Close(w.wake[0])
	if w.onExit != nil {
		defer w.onExit()
	}

	pollFds := []unix.PollFd{
		{Fd: int32(w.fd), Events: unix.POLLIN},
		{Fd: int32(w.wake[0]), Events: unix.POLLIN},
	}

	for {
		pollFds[0].Revents = 0
		pollFds[1].Revents = 0

		if _, err := unix.Poll(pollFds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			w.err = errors.Wrap(err, "poll failed")
			logger.Errorf("watching fd %d: %v", w.fd, w.err)
			return
		}

		if pollFds[1].Revents != 0 || w.stopped() {
			return
		}

		revents := pollFds[0].Revents
		switch {
		case revents&unix.POLLNVAL != 0:
			w.err = ErrDescriptorClosed
			return
		case revents&unix.POLLIN != 0:
			w.fn()
		case revents&(unix.POLLHUP|unix.POLLERR) != 0:
			w.err = ErrHangup
			return
		}
	}
}
