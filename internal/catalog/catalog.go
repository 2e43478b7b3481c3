// Package catalog discovers which game directories are candidates for a
// link or unlink operation.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"glink/internal/domain"
)

// Query describes one candidate lookup
type Query struct {
	SourceDir string
	TargetDir string
	Name      string // Full or partial game name; empty matches everything
	Exact     bool   // Trust Name as-is and skip scanning
	Reverse   bool   // Unlink: only games already in TargetDir qualify
	Ignore    domain.IgnoreSet
}

// Find returns the sorted candidate names for q.
//
// Linking offers games present in exactly one of the two locations: a game
// found in both is in an inconsistent state and is never offered. Unlinking
// offers what is in the target location. Returns domain.ErrNoMatch when nothing
// qualifies.
func Find(q Query) ([]string, error) {
	if q.Exact {
		return []string{q.Name}, nil
	}

	target, err := scan(q.TargetDir, q.Name, q.Ignore)
	if err != nil {
		return nil, err
	}

	var names map[string]string
	if q.Reverse {
		names = target
	} else {
		source, err := scan(q.SourceDir, q.Name, q.Ignore)
		if err != nil {
			return nil, err
		}
		names = symmetricDifference(source, target)
	}

	if len(names) == 0 {
		return nil, domain.ErrNoMatch
	}
	return sortedValues(names), nil
}

// scan lists the qualifying subdirectories of dir keyed by lower-cased name.
// A missing dir yields nothing.
func scan(dir, query string, ignore domain.IgnoreSet) (map[string]string, error) {
	found := make(map[string]string)
	if dir == "" {
		return found, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return found, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	query = strings.ToLower(query)
	for _, e := range entries {
		name := e.Name()
		key := strings.ToLower(name)
		if ignore.Contains(name) || !strings.Contains(key, query) {
			continue
		}
		if !isDir(dir, e) {
			continue
		}
		if _, dup := found[key]; !dup {
			found[key] = name
		}
	}
	return found, nil
}

// isDir follows links and junctions, so an already linked game still counts
// as present in its original location.
func isDir(dir string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type().IsRegular() {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}

func symmetricDifference(a, b map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range a {
		if _, ok := b[k]; !ok {
			out[k] = v
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	domain.SortFold(out)
	return out
}

// PlatformQuery is the per-platform input of FindAll
type PlatformQuery struct {
	Platform string
	Query    Query
}

// FindAll runs every query and labels the results "[platform] game", platforms
// in case-insensitive order. Platforms without candidates are skipped.
func FindAll(queries []PlatformQuery) ([]string, error) {
	sorted := make([]PlatformQuery, len(queries))
	copy(sorted, queries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Platform) < strings.ToLower(sorted[j].Platform)
	})

	var labels []string
	for _, pq := range sorted {
		games, err := Find(pq.Query)
		if errors.Is(err, domain.ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", pq.Platform, err)
		}
		for _, g := range games {
			labels = append(labels, Label(pq.Platform, g))
		}
	}

	if len(labels) == 0 {
		return nil, domain.ErrNoMatch
	}
	return labels, nil
}

var labelPattern = regexp.MustCompile(`^\[(.+?)\] (.+)$`)

// Label formats a platform-qualified game name
func Label(platform, game string) string {
	return fmt.Sprintf("[%s] %s", platform, game)
}

// ParseLabel splits a label made by Label
func ParseLabel(label string) (platform, game string, ok bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
