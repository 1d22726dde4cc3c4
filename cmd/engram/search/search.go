// Package searchcmder provides the search command for querying stored memories.
package searchcmder

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

type searchCommander struct {
	limit int

	cfg   *config.Config
	debug bool

	logger *zap.Logger
}

const searchLongDesc string = `Search stored memories by free text.

Relevance ranking and match types are decided by the backend; results are
shown best match first.

Examples:
  engram search "indentation"
  engram search "deploy process" --limit 5`

const searchShortDesc string = "Search stored memories"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cmder.cfg = config.FromViper(v)
			return cmder.cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			return cmder.run(args[0])
		},
	}

	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 10, "Max results to return")

	return cmd
}

func (c *searchCommander) run(query string) error {
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

	hits, err := client.Search(ctx, query, c.limit)
	if err != nil {
		return fmt.Errorf("searching memories: %w", err)
	}

	if len(hits) == 0 {
		fmt.Printf("  %s No memories match %q.\n", cliui.DimStyle.Render("●"), query)
		return nil
	}

	fmt.Printf("\n  %s %d memories for %q\n\n", cliui.KeyStyle.Render("Found"), len(hits), query)
	for i, hit := range hits {
		fmt.Printf("  %s %s %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.IDStyle.Render(fmt.Sprintf("#%d", hit.Memory.ID)),
			cliui.TypeStyle.Render(fmt.Sprintf("[%s, importance %d, score %.2f]", hit.Memory.Type, hit.Memory.Importance, hit.Score)),
			cliui.PreviewStyle.Render(utils.Truncate(hit.Memory.Content, 96)),
		)
	}
	fmt.Println()

	return nil
}
