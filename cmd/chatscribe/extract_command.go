package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chatscribe/internal/archive"
	"chatscribe/internal/config"
	"chatscribe/internal/notifications"
	"chatscribe/internal/pipeline"
	"chatscribe/internal/services/devtools"
)

func newExtractCommand(cmdCtx *commandContext) *cobra.Command {
	var chatFlag string
	var cyclesFlag int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Capture a chat transcript from the running browser session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if chatFlag != "" {
				cfg.Chat.Name = chatFlag
			}
			if cyclesFlag > 0 {
				cfg.Scroll.Cycles = cyclesFlag
			}

			logger, err := cmdCtx.buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			var store *archive.Store
			if cfg.Archive.Enabled {
				store, err = archive.Open(cfg.ArchivePath())
				if err != nil {
					return fmt.Errorf("open run ledger: %w", err)
				}
				defer store.Close()
			}

			p, err := pipeline.New(cfg, newDevtoolsSession, store, notifications.NewService(cfg), logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, runErr := p.Run(ctx)
			if result != nil {
				printRunSummary(cmd, result)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&chatFlag, "chat", "", "Chat title to extract (overrides configuration)")
	cmd.Flags().IntVar(&cyclesFlag, "cycles", 0, "Scroll cycle budget (overrides configuration)")
	return cmd
}

// newDevtoolsSession attaches to the browser's debugging port and prepares
// the WhatsApp Web page.
func newDevtoolsSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pipeline.Session, error) {
	client, err := devtools.Attach(ctx, cfg.Session.DevToolsURL, logger)
	if err != nil {
		return nil, err
	}
	source := devtools.NewSource(client, cfg, logger)
	if err := source.EnsureWhatsApp(ctx); err != nil {
		_ = source.Close()
		return nil, err
	}
	return source, nil
}

func printRunSummary(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()
	state := "completed"
	if result.Partial {
		state = "partial"
	}
	fmt.Fprintf(out, "Run %s %s: %d messages captured over %d cycles\n",
		result.RunID, state, result.Records, result.CyclesCompleted)
	if result.RawPath != "" {
		fmt.Fprintf(out, "Raw transcript: %s\n", result.RawPath)
	}
	if result.FilteredPath != "" {
		fmt.Fprintf(out, "Filtered transcript (%d kept): %s\n", result.Kept, result.FilteredPath)
	}
}
