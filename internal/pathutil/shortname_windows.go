//go:build windows

package pathutil

import "golang.org/x/sys/windows"

// expandShortNames turns 8.3 components such as PROGRA~1 into their long form.
func expandShortNames(path string) string {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return path
	}

	n := uint32(windows.MAX_PATH)
	for {
		buf := make([]uint16, n)
		r, err := windows.GetLongPathName(p, &buf[0], n)
		if err != nil || r == 0 {
			return path
		}
		if r < n {
			return windows.UTF16ToString(buf[:r])
		}
		n = r
	}
}
