package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chatscribe/internal/config"
	"chatscribe/internal/pipeline"
)

func newFilterCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Drop automated messages from a previously captured transcript",
		Long: "Reads a raw transcript file, removes system-generated rows using the " +
			"configured classification rules, and writes the remainder next to the " +
			"source file. Defaults to the configured raw output file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			source := cfg.RawOutputPath()
			if len(args) == 1 {
				source, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve input path: %w", err)
				}
			}

			classifier, err := pipeline.NewClassifier(cfg)
			if err != nil {
				return err
			}

			result, err := pipeline.FilterFile(classifier, source, cfg.Output.FilteredSuffix, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Filtered %d of %d messages into %s\n", result.Kept, result.Total, result.OutputPath)
			if result.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d malformed entries in the source file\n", result.Skipped)
			}
			return nil
		},
	}
	return cmd
}
