// Package recallcmder provides the recall command for retrieving the
// highest-priority memories.
package recallcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/remote"
	"github.com/engram-memory/engram/pkg/utils"
)

type recallCommander struct {
	limit         int
	minImportance int

	cfg   *config.Config
	debug bool

	logger *zap.Logger
}

const recallLongDesc string = `Retrieve the highest-priority memories.

Recall is what the automatic pre-generation hook runs on every turn; this
command exposes the same primitive directly. Defaults come from the
configured memory.min_importance and memory.max_recall_results.

Examples:
  engram recall
  engram recall --min-importance 8 --limit 5`

const recallShortDesc string = "Recall the highest-priority memories"

func NewRecallCmd() *cobra.Command {
	cmder := &recallCommander{}

	cmd := &cobra.Command{
		Use:   "recall",
		Short: recallShortDesc,
		Long:  recallLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cmder.cfg = config.FromViper(v)
			if err := cmder.cfg.Validate(); err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				cmder.limit = cmder.cfg.Memory.MaxRecallResults
			}
			if !cmd.Flags().Changed("min-importance") {
				cmder.minImportance = cmder.cfg.Memory.MinImportance
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			return cmder.run()
		},
	}

	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 10, "Max memories to recall")
	cmd.Flags().IntVarP(&cmder.minImportance, "min-importance", "m", 5, "Minimum importance threshold")

	return cmd
}

func (c *recallCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	client := remote.NewClient(remote.Config{
		Host:      c.cfg.Backend.Host,
		Namespace: c.cfg.Memory.Namespace,
		APIKey:    c.cfg.Backend.APIKey,
	}, c.logger)

	gate := availability.NewGate(availability.Config{}, client)

	ctx := context.Background()
	if !gate.Available(ctx) {
		fmt.Printf("  %s %s\n", cliui.FailMark, availability.UnavailableMessage)
		return nil
	}

	records, err := client.Recall(ctx, c.limit, c.minImportance)
	if err != nil {
		return fmt.Errorf("recalling memories: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("  %s No memories at or above importance %d.\n", cliui.DimStyle.Render("●"), c.minImportance)
		return nil
	}

	fmt.Printf("\n  %s %d memories at or above importance %d\n\n", cliui.KeyStyle.Render("Top"), len(records), c.minImportance)
	for i, rec := range records {
		fmt.Printf("  %s %s %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.IDStyle.Render(fmt.Sprintf("#%d", rec.ID)),
			cliui.TypeStyle.Render(fmt.Sprintf("[%s, importance %d]", rec.Type, rec.Importance)),
			cliui.PreviewStyle.Render(utils.Truncate(rec.Content, 96)),
		)
	}
	fmt.Println()

	return nil
}
