package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Show configured platforms and their locations",
	Args:  cobra.NoArgs,
	RunE:  runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	platforms, err := service.Platforms()
	if err != nil {
		return err
	}

	if len(platforms) == 0 {
		fmt.Fprintf(stdout, "No platforms configured. Add one to %s or run 'glink detect --write'.\n", service.ConfigPath())
		return nil
	}

	current := currentPlatform(service)
	for i, p := range platforms {
		if i > 0 {
			fmt.Fprintln(stdout)
		}

		marker := ""
		if p.Name == current {
			marker = colorGreen(" (current directory)")
		}
		fmt.Fprintf(stdout, "%s [%s]%s\n", p.Name, p.LinkMethod, marker)

		roles := make([]string, 0, len(p.Dirs))
		for role := range p.Dirs {
			roles = append(roles, role)
		}
		sort.Strings(roles)

		for _, role := range roles {
			dir := p.Dirs[role]
			status := ""
			if _, err := os.Stat(dir); err != nil {
				status = " " + colorYellow("(missing)")
			}
			fmt.Fprintf(stdout, "  %-6s %s%s\n", role+":", dir, status)
		}
		if len(p.Ignore) > 0 {
			fmt.Fprintf(stdout, "  ignoring %d folder(s)\n", len(p.Ignore))
		}
	}
	return nil
}
