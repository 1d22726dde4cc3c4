package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/engram-memory/engram/pkg/cliui"
	"github.com/engram-memory/engram/pkg/config"
)

const listLongDesc string = `List all configuration values.

Prints every known key with its effective value, after applying
defaults for anything not set in the config.toml file.`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(configDir)
		},
	}

	return cmd
}

func runList(configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	target := cfger.GetTarget()
	if target != "" {
		fmt.Printf("\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
	} else {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
	}

	for _, key := range config.ValidConfigKeys() {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s\n",
			cliui.KeyStyle.Render(key+":"),
			cliui.ValueStyle.Render(value),
		)
	}
	fmt.Println()

	return nil
}
