// Package statuscmder provides the status command for probing backend
// reachability and showing the active configuration.
package statuscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

const statusLongDesc string = `Show backend reachability and the active configuration.

Performs a single health probe against the configured backend host; this
bypasses the cached availability gate so the answer is always fresh.

Examples:
  engram status`

const statusShortDesc string = "Show backend status"

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			debug, _ := cmd.Flags().GetBool("debug")
			return runStatus(configDir, debug)
		},
	}

	return cmd
}

func runStatus(configDir string, debug bool) error {
	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return err
	}

	zapLogger := logger.NewLogger(debug)
	defer zapLogger.Sync()

	client := remote.NewClient(remote.Config{
		Host:      cfg.Backend.Host,
		Namespace: cfg.Memory.Namespace,
		APIKey:    cfg.Backend.APIKey,
	}, zapLogger)

	reachable := client.Health(context.Background())

	mark := cliui.SuccessMark
	verdict := "reachable"
	if !reachable {
		mark = cliui.FailMark
		verdict = "unreachable"
	}

	fmt.Printf("\n  %s %s %s\n\n", mark, cliui.KeyStyle.Render("Backend:"), fmt.Sprintf("%s (%s)", cfg.Backend.Host, verdict))
	fmt.Printf("  %s    %s\n", cliui.KeyStyle.Render("Namespace:"), cfg.Memory.Namespace)
	fmt.Printf("  %s  %v\n", cliui.KeyStyle.Render("Auto-recall:"), cfg.Memory.AutoRecall)
	fmt.Printf("  %s %v\n", cliui.KeyStyle.Render("Auto-capture:"), cfg.Memory.AutoCapture)
	fmt.Printf("  %s %d\n", cliui.KeyStyle.Render("Min importance:"), cfg.Memory.MinImportance)
	fmt.Printf("  %s %d\n\n", cliui.KeyStyle.Render("Max recall:"), cfg.Memory.MaxRecallResults)

	return nil
}
