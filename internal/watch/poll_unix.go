//go:build unix

package watch

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// platformPoll waits until fd is readable or the timeout elapses.
func platformPoll(fd int, timeout time.Duration) (bool, error) {
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1 // sub-millisecond waits must not busy spin
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents != 0, nil
}

func platformRead(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

// isInterrupted reports whether a wait or read was cut short by a
// signal. The loop treats that as a request to stop.
func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
