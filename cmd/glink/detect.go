package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"glink/internal/source/steam"
	"glink/internal/storage/config"
)

var (
	detectWrite bool
	detectRoots []string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Propose a steam platform from the Steam libraries on this machine",
	Long: `Find Steam libraries (from libraryfolders.vdf) and propose a "steam"
platform with one location per library. Locations are named after the library
label set in Steam, or lib0, lib1, ... otherwise.

With --write the platform is added to the config file. Locations already
configured for steam are kept.

Examples:
  glink detect
  glink detect --write
  glink detect --steam-root /mnt/games/Steam`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVarP(&detectWrite, "write", "w", false, "add the proposed platform to the config file")
	detectCmd.Flags().StringSliceVar(&detectRoots, "steam-root", nil, "Steam installation directory (default: search the usual places)")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	roots := detectRoots
	if len(roots) == 0 {
		roots = steam.FindSteamRoots()
	}
	if len(roots) == 0 {
		fmt.Fprintln(stdout, "No Steam installation found.")
		return nil
	}

	libs, err := steam.Detect(roots)
	if err != nil {
		return fmt.Errorf("detecting libraries: %w", err)
	}

	if len(libs) == 0 {
		fmt.Fprintln(stdout, "No Steam libraries found.")
		return nil
	}

	fmt.Fprintf(stdout, "Found %d Steam libraries:\n", len(libs))
	for _, lib := range libs {
		fmt.Fprintf(stdout, "  %s %s (%d games)\n", colorGreen("✓"), lib.Common, len(lib.Games))
		logger.Debug().Str("library", lib.Path).Strs("games", lib.Games).Msg("detected library")
	}

	dirs := steam.Roles(libs)
	proposed := config.PlatformConfig{Dirs: dirs, Ignore: steam.DefaultIgnore}
	cfg := service.Config()
	if existing, ok := cfg.Platforms[steam.PlatformName]; ok {
		proposed = mergePlatform(existing, proposed)
	}

	if !detectWrite {
		out, err := yaml.Marshal(map[string]any{
			"platforms": map[string]config.PlatformConfig{steam.PlatformName: proposed},
		})
		if err != nil {
			return fmt.Errorf("marshaling proposal: %w", err)
		}
		fmt.Fprintf(stdout, "\nAdd to %s (or rerun with --write):\n\n%s", service.ConfigPath(), out)
		return nil
	}

	cfg.Platforms[steam.PlatformName] = proposed
	if err := service.SaveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s platform to %s\n", steam.PlatformName, service.ConfigPath())
	return nil
}

// mergePlatform keeps everything already configured and adds the detected
// locations and ignores that are missing.
func mergePlatform(existing, detected config.PlatformConfig) config.PlatformConfig {
	merged := config.PlatformConfig{
		Dirs:       make(map[string]string, len(existing.Dirs)+len(detected.Dirs)),
		Ignore:     append([]string(nil), existing.Ignore...),
		LinkMethod: existing.LinkMethod,
	}

	known := make(map[string]bool)
	for role, dir := range existing.Dirs {
		merged.Dirs[role] = dir
		known[config.ExpandPath(dir)] = true
	}
	for role, dir := range detected.Dirs {
		if known[dir] {
			continue
		}
		if _, taken := merged.Dirs[role]; taken {
			role = fmt.Sprintf("%s_%d", role, len(merged.Dirs))
		}
		merged.Dirs[role] = dir
	}

	ignored := make(map[string]bool)
	for _, name := range merged.Ignore {
		ignored[name] = true
	}
	for _, name := range detected.Ignore {
		if !ignored[name] {
			merged.Ignore = append(merged.Ignore, name)
		}
	}
	return merged
}
