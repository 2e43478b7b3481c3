//go:build !windows

package transfer

import (
	"errors"
	"syscall"
)

// isCrossDevice reports whether a rename failed because src and dst are on
// different filesystems
func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
