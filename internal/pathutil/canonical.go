// Package pathutil normalizes filesystem paths to their on-disk spelling.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize returns path with every component spelled the way the
// filesystem stores it. Components are matched case-insensitively, so a
// path typed as "d:\games\skyrim" comes back as "D:\Games\Skyrim" (the
// volume name is kept as given).
//
// A path that does not exist is returned unchanged. Canonicalize never fails.
func Canonicalize(path string) string {
	if path == "" {
		return path
	}

	clean := filepath.Clean(expandShortNames(path))
	vol := filepath.VolumeName(clean)
	rest := clean[len(vol):]

	out := vol
	if strings.HasPrefix(rest, string(filepath.Separator)) {
		out = vol + string(filepath.Separator)
		rest = rest[1:]
	}

	for _, part := range strings.Split(rest, string(filepath.Separator)) {
		switch part {
		case "":
			continue
		case ".", "..":
			out = filepath.Join(out, part)
			continue
		}

		name, ok := matchEntry(out, part)
		if !ok {
			return path
		}
		out = filepath.Join(out, name)
	}

	return out
}

// Exists reports whether path exists, following links
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path is a directory, following links
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// matchEntry finds name inside dir. An exact match wins over a case-folded one.
func matchEntry(dir, name string) (string, bool) {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Traverse-only directories can't be listed; keep the name if it resolves.
		if _, statErr := os.Lstat(filepath.Join(dir, name)); statErr == nil {
			return name, true
		}
		return "", false
	}

	folded := ""
	for _, e := range entries {
		if e.Name() == name {
			return name, true
		}
		if folded == "" && strings.EqualFold(e.Name(), name) {
			folded = e.Name()
		}
	}
	return folded, folded != ""
}
