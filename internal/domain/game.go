package domain

import (
	"sort"
	"strings"
)

// LinkMethod determines how the original location is pointed at the relocated game
type LinkMethod int

const (
	LinkJunction LinkMethod = iota // Default: directory junction (no elevation needed on Windows)
	LinkSymlink                    // Directory symlink
)

func (m LinkMethod) String() string {
	switch m {
	case LinkJunction:
		return "junction"
	case LinkSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ParseLinkMethod converts a string to LinkMethod
func ParseLinkMethod(s string) LinkMethod {
	switch strings.ToLower(s) {
	case "symlink":
		return LinkSymlink
	default:
		return LinkJunction
	}
}

// IgnoreSet holds lower-cased game directory names excluded from discovery
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet, dropping empty names
func NewIgnoreSet(names ...string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// Contains reports whether name is ignored, ignoring case
func (s IgnoreSet) Contains(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Platform is a gaming platform with its named game locations
type Platform struct {
	Name       string            // e.g. "steam"
	Dirs       map[string]string // Location role -> directory, e.g. "hdd" -> "D:\Games"
	Ignore     IgnoreSet         // Directories that are never games
	LinkMethod LinkMethod
}

// Dir returns the directory configured for a location role
func (p *Platform) Dir(role string) (string, bool) {
	dir, ok := p.Dirs[role]
	return dir, ok
}

// SortFold sorts names case-insensitively, falling back to byte order for ties
func SortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}
