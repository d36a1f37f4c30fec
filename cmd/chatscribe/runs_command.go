package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chatscribe/internal/archive"
)

func newRunsCommand(cmdCtx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent extraction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := archive.Open(cfg.ArchivePath())
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func renderRuns(runs []*archive.Run) string {
	headers := []string{"Started", "Chat", "Status", "Cycles", "Messages", "Kept", "Duration"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			formatTimestamp(run.StartedAt),
			run.ChatName,
			string(run.Status),
			fmt.Sprintf("%d/%d", run.CyclesCompleted, run.CyclesRequested),
			strconv.Itoa(run.RecordCount),
			strconv.Itoa(run.KeptCount),
			formatRunDuration(run),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	return renderTable(headers, rows, aligns)
}
