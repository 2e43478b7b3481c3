// Package steam finds Steam libraries on disk so they can be configured as
// locations of a "steam" platform.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"glink/internal/domain"
)

// PlatformName is the platform name proposed for detected libraries
const PlatformName = "steam"

// DefaultIgnore lists directories under steamapps/common that are not games
var DefaultIgnore = []string{"Steamworks Shared", "SteamVR", "Proton - Experimental", "Steam Linux Runtime"}

// Library is one Steam library folder
type Library struct {
	Path   string   // Library root, e.g. D:\SteamLibrary
	Label  string   // Label set in the Steam client; may be empty
	Common string   // Directory holding game folders: <Path>/steamapps/common
	Games  []string // Install directories of the games in the library
}

// FindSteamRoots returns existing Steam installation roots in search order.
// STEAM_ROOT, when set, is searched first.
func FindSteamRoots() []string {
	var candidates []string
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append(candidates, p)
	}

	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		for _, env := range []string{"ProgramFiles(x86)", "ProgramFiles"} {
			if base := os.Getenv(env); base != "" {
				candidates = append(candidates, filepath.Join(base, "Steam"))
			}
		}
	case "darwin":
		candidates = append(candidates, filepath.Join(home, "Library", "Application Support", "Steam"))
	default:
		candidates = append(candidates,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		)
	}

	var out []string
	seen := make(map[string]bool)
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		// ~/.steam/steam is usually a link to ~/.local/share/Steam
		key := p
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// LibraryFolders reads steamapps/libraryfolders.vdf under steamRoot. Without
// the file the root itself is the only library.
func LibraryFolders(steamRoot string) ([]Library, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	f, err := os.Open(vdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Library{newLibrary(steamRoot, "")}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	defer f.Close()

	root, err := ParseKeyValues(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", vdfPath, err)
	}

	folders, ok := root.Block("libraryfolders")
	if !ok {
		return []Library{newLibrary(steamRoot, "")}, nil
	}

	// Entries are keyed "0", "1", ...; older files map the index straight to a path
	keys := make([]string, 0, len(folders))
	for k := range folders {
		if _, err := strconv.Atoi(k); err == nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	var libs []Library
	for _, k := range keys {
		switch v := folders[k].(type) {
		case string:
			libs = append(libs, newLibrary(v, ""))
		case KeyValues:
			if p := v.String("path"); p != "" {
				libs = append(libs, newLibrary(p, v.String("label")))
			}
		}
	}
	if len(libs) == 0 {
		return []Library{newLibrary(steamRoot, "")}, nil
	}
	return libs, nil
}

func newLibrary(path, label string) Library {
	return Library{
		Path:   filepath.Clean(path),
		Label:  label,
		Common: filepath.Join(filepath.Clean(path), "steamapps", "common"),
	}
}

// AppManifest holds the fields of an appmanifest_*.acf file used here
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses the content of an appmanifest_*.acf file
func ParseAppManifest(data string) (AppManifest, error) {
	root, err := ParseKeyValues(strings.NewReader(data))
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root.Block("AppState")
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.String("appid"),
		Name:       state.String("name"),
		InstallDir: state.String("installdir"),
	}, nil
}

// InstalledGames lists the install directories of the games whose manifests
// sit in the library and whose folder exists under Common, sorted case-insensitively.
func (l Library) InstalledGames() ([]string, error) {
	steamapps := filepath.Join(l.Path, "steamapps")
	entries, err := os.ReadDir(steamapps)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", steamapps, err)
	}

	var games []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(steamapps, name))
		if err != nil {
			continue
		}
		m, err := ParseAppManifest(string(data))
		if err != nil || m.InstallDir == "" {
			continue
		}
		if info, err := os.Stat(filepath.Join(l.Common, m.InstallDir)); err != nil || !info.IsDir() {
			continue
		}
		games = append(games, m.InstallDir)
	}
	domain.SortFold(games)
	return games, nil
}

// Detect finds every library of every Steam root, with installed games filled in.
// Libraries listed by more than one root are reported once.
func Detect(roots []string) ([]Library, error) {
	var libs []Library
	seen := make(map[string]bool)

	for _, root := range roots {
		found, err := LibraryFolders(root)
		if err != nil {
			return nil, err
		}
		for _, lib := range found {
			key := strings.ToLower(lib.Path)
			if seen[key] {
				continue
			}
			seen[key] = true

			games, err := lib.InstalledGames()
			if err != nil {
				return nil, err
			}
			lib.Games = games
			libs = append(libs, lib)
		}
	}
	return libs, nil
}

// Roles names each library as a location role: its label when it has a
// usable one, otherwise lib0, lib1, ... in library order.
func Roles(libs []Library) map[string]string {
	dirs := make(map[string]string, len(libs))
	for i, lib := range libs {
		role := roleName(lib.Label)
		if role == "" || dirs[role] != "" {
			role = fmt.Sprintf("lib%d", i)
		}
		dirs[role] = lib.Common
	}
	return dirs
}

func roleName(label string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('_')
		}
	}
	return strings.Trim(sb.String(), "_")
}
