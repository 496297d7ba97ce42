//go:build !(darwin || linux || freebsd)

package sources

import (
	"errors"
	"runtime"
)

func diskUsage(string) (uint64, uint64, error) {
	return 0, 0, errors.New("disk usage not supported on " + runtime.GOOS)
}
