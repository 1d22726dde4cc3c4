// Package engramcmder
package engramcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/engram-memory/engram/cmd/engram/config"
	forgetcmder "github.com/engram-memory/engram/cmd/engram/forget"
	initcmder "github.com/engram-memory/engram/cmd/engram/init"
	recallcmder "github.com/engram-memory/engram/cmd/engram/recall"
	searchcmder "github.com/engram-memory/engram/cmd/engram/search"
	servecmder "github.com/engram-memory/engram/cmd/engram/serve"
	statscmder "github.com/engram-memory/engram/cmd/engram/stats"
	statuscmder "github.com/engram-memory/engram/cmd/engram/status"
	storecmder "github.com/engram-memory/engram/cmd/engram/store"
	versioncmder "github.com/engram-memory/engram/cmd/version"
)

const engramLongDesc string = `Engram is a persistent memory layer for your agents.

Store, search, and recall memories against a running engram server:
  engram store "Prefers tabs over spaces"
  engram search "indentation"
  engram recall --min-importance 7

Serve the agent-facing MCP tool surface:
  engram serve`

const engramShortDesc string = "Engram - Agent Memory"

func NewEngramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engram",
		Short: engramShortDesc,
		Long:  engramLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .engram/ directory location")

	// Add subcommands
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(storecmder.NewStoreCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(recallcmder.NewRecallCmd())
	cmd.AddCommand(forgetcmder.NewForgetCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
