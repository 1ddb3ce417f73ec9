//go:build windows

package watch

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("focus watching requires a POSIX terminal")

func platformPoll(fd int, timeout time.Duration) (bool, error) {
	return false, errUnsupported
}

func platformRead(fd int, p []byte) (int, error) {
	return 0, errUnsupported
}

func isInterrupted(err error) bool {
	return false
}
