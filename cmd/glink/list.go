package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"glink/internal/domain"
)

var (
	listPlatform string
	listSource   string
	listTarget   string
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List games of a platform and where they live",
	Long: `List every game found in either location of a platform, with its state:

  source       only in the source location (can be linked)
  target       only in the target location (can be moved back)
  linked       in the target location with a junction at the source
  conflict     real folders in both locations; neither link nor unlink applies

LAST MOVED is the newest entry of the history journal for the game.

Examples:
  glink list -p steam
  glink list -p steam portal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPlatform, "platform", "p", "", "platform to list (default: detected from the current directory)")
	listCmd.Flags().StringVarP(&listSource, "source", "s", "hdd", "source location")
	listCmd.Flags().StringVarP(&listTarget, "target", "t", "ssd", "target location")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	name := listPlatform
	if name == "" {
		name = currentPlatform(service)
	}
	if name == "" {
		return fmt.Errorf("no platform specified; use --platform or run from inside a platform location")
	}

	p, err := service.Platform(name)
	if err != nil {
		return err
	}
	req, err := service.Request(p, listSource, listTarget)
	if err != nil {
		return err
	}

	games, err := service.ListGames(req, query)
	if err != nil {
		return fmt.Errorf("listing games: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(stdout, "No games found.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tSTATE\tLAST MOVED")
	fmt.Fprintln(w, "----\t-----\t----------")
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Name, colorState(g.Status()), lastMoved(g.Last))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%d game(s) on %s (%s: %s, %s: %s)\n", len(games), p.Name, listSource, req.SourceDir, listTarget, req.TargetDir)
	return nil
}

// lastMoved summarizes the newest journal entry of a game
func lastMoved(e *domain.HistoryEntry) string {
	if e == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", e.Action, humanize.Time(e.CreatedAt))
}

func colorState(state string) string {
	switch state {
	case "linked":
		return colorGreen(state)
	case "conflict", "broken link":
		return colorRed(state)
	case "target":
		return colorYellow(state)
	default:
		return state
	}
}
