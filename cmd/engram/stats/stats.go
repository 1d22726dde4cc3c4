// Package statscmder provides the stats command for displaying the aggregate
// memory snapshot.
package statscmder

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

type statsCommander struct {
	cfg   *config.Config
	debug bool

	logger *zap.Logger
}

const statsLongDesc string = `Show aggregate memory statistics for the configured namespace.

Displays total count, per-type counts, average importance, and storage size.

Examples:
  engram stats`

const statsShortDesc string = "Show memory statistics"

func NewStatsCmd() *cobra.Command {
	cmder := &statsCommander{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cmder.cfg = config.FromViper(v)
			return cmder.cfg.Validate()
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

	return cmd
}

func (c *statsCommander) run() error {
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

	stats, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetching stats: %w", err)
	}

	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("Namespace:"), stats.Namespace)
	fmt.Printf("  %s   %d\n", cliui.KeyStyle.Render("Memories:"), stats.TotalMemories)
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Importance:"), cliui.ScoreStyle.Render(fmt.Sprintf("%.1f avg", stats.AverageImportance)))
	fmt.Printf("  %s    %.2f MB\n\n", cliui.KeyStyle.Render("Size:"), stats.DBSizeMB)

	types := make([]string, 0, len(stats.ByType))
	for typ := range stats.ByType {
		types = append(types, typ)
	}
	sort.Strings(types)

	for _, typ := range types {
		fmt.Printf("  %s %s: %d\n",
			cliui.DimStyle.Render("-"),
			cliui.TypeStyle.Render(typ),
			stats.ByType[typ],
		)
	}
	fmt.Println()

	return nil
}
