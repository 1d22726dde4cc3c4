// Package initcmder provides the init command for initializing a local
// .engram directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/dotdir"
)

const initLongDesc string = `Initialize a new .engram/ directory in the current working directory.

Creates a local .engram/ directory with a default config.toml. The local
directory takes precedence over the default ~/.engram/ directory, which is
useful for keeping a separate memory namespace per project.

Examples:
  engram init`

const initShortDesc string = "Initialize a local .engram/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	mgr := dotdir.NewManager()

	dir, err := mgr.InitLocal()
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("\n  %s Already initialized: %s\n\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(dir),
		)
		return nil
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("preparing config: %w", err)
	}

	if err := cfger.SaveConfig(config.NewDefaultConfig()); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Printf("\n  %s Initialized .engram directory: %s\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render(dir),
	)
	fmt.Printf("  %s Wrote default config: %s\n\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render(configPath),
	)
	return nil
}
