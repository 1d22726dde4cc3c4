// Package storecmder provides the store command for persisting a memory.
package storecmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

type storeCommander struct {
	typ        string
	importance int
	tags       []string

	cfg   *config.Config
	debug bool

	logger *zap.Logger
}

const storeLongDesc string = `Store a memory in the engram backend.

The backend deduplicates by content hash: storing the same content twice
reports a duplicate instead of creating a second record.

Examples:
  engram store "Prefers tabs over spaces"
  engram store "Deploy runs through the staging pipeline first" --type workflow --importance 8
  engram store "API key lives in 1Password" --tags credentials,onboarding`

const storeShortDesc string = "Store a memory"

func NewStoreCmd() *cobra.Command {
	cmder := &storeCommander{}

	cmd := &cobra.Command{
		Use:   "store <content>",
		Short: storeShortDesc,
		Long:  storeLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.loadConfig(cmd)
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

	cmd.Flags().StringVarP(&cmder.typ, "type", "t", "fact", "Memory type (fact, preference, decision, error_fix, pattern, workflow, summary, custom)")
	cmd.Flags().IntVarP(&cmder.importance, "importance", "i", 5, "Importance 1-10 (10 = critical)")
	cmd.Flags().StringSliceVar(&cmder.tags, "tags", nil, "Searchable tags")

	return cmd
}

func (c *storeCommander) loadConfig(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c.cfg = config.FromViper(v)
	return c.cfg.Validate()
}

func (c *storeCommander) run(content string) error {
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

	var result memory.StoreResult
	if err := cliui.Step(os.Stdout, "Storing memory", func() error {
		var storeErr error
		result, storeErr = client.Store(ctx, content, memory.Type(c.typ), c.importance, c.tags)
		return storeErr
	}); err != nil {
		return fmt.Errorf("storing memory: %w", err)
	}

	if result.Duplicate || result.ID == nil {
		fmt.Printf("  %s Already known: the backend recognized this content as a duplicate.\n", cliui.DimStyle.Render("●"))
		return nil
	}

	fmt.Printf("  %s Stored memory %s %s\n",
		cliui.SuccessMark,
		cliui.IDStyle.Render(fmt.Sprintf("#%d", *result.ID)),
		cliui.TypeStyle.Render(fmt.Sprintf("[%s, importance %d]", c.typ, c.importance)),
	)

	return nil
}
