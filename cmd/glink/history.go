package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"glink/internal/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently linked and unlinked games",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show (0 for all)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	entries, err := service.History(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No history yet.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPLATFORM\tGAME\tACTION\tSIZE\tPATHS")
	fmt.Fprintln(w, "----\t--------\t----\t------\t----\t-----")
	for _, e := range entries {
		size := "-"
		if e.Bytes > 0 {
			size = humanize.Bytes(uint64(e.Bytes))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(e.CreatedAt), e.Platform, e.Game, e.Action, size, paths(e))
	}
	return w.Flush()
}

func paths(e domain.HistoryEntry) string {
	if e.Direction == domain.DirectionUnlink {
		return e.SourcePath + " <== " + e.TargetPath
	}
	return e.SourcePath + " ==> " + e.TargetPath
}
