//go:build windows

package transfer

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// isCrossDevice reports whether a rename failed because src and dst are on
// different volumes
func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE) || errors.Is(err, syscall.EXDEV)
}
