//go:build windows

package wrap

import "errors"

func Run(opts Options) (int, error) {
	return 0, errors.New("wrap requires a POSIX terminal")
}
