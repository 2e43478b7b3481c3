//go:build !windows

package pathutil

func expandShortNames(path string) string {
	return path
}
