// Package forgetcmder provides the forget command for deleting a memory by id.
package forgetcmder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

type forgetCommander struct {
	cfg   *config.Config
	debug bool

	logger *zap.Logger
}

const forgetLongDesc string = `Delete a memory by its ID.

Reports whether a record existed. Deleting an unknown ID is not an error.

Examples:
  engram forget 42`

const forgetShortDesc string = "Delete a memory by ID"

func NewForgetCmd() *cobra.Command {
	cmder := &forgetCommander{}

	cmd := &cobra.Command{
		Use:   "forget <memory-id>",
		Short: forgetShortDesc,
		Long:  forgetLongDesc,
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

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid memory id %q: %w", args[0], err)
			}

			return cmder.run(id)
		},
	}

	return cmd
}

func (c *forgetCommander) run(id int64) error {
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

	deleted, err := client.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting memory: %w", err)
	}

	if !deleted {
		fmt.Printf("  %s No memory with ID %s.\n", cliui.DimStyle.Render("●"), cliui.IDStyle.Render(fmt.Sprintf("#%d", id)))
		return nil
	}

	fmt.Printf("  %s Deleted memory %s\n", cliui.SuccessMark, cliui.IDStyle.Render(fmt.Sprintf("#%d", id)))
	return nil
}
