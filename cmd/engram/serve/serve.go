// Package servecmder provides the serve command for running the MCP server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/api"
	"github.com/engram-memory/engram/api/mcp"
	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/config"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

type ServeCommander struct {
	listen  string
	noop    bool
	debug   bool
	logFile string
	cfg     *config.Config
	logger  *zap.Logger
	cli     *slog.Logger
}

const serveLongDesc string = `Run the engram MCP server.

Exposes the memory tools (memory_store, memory_search, memory_recall,
memory_forget, memory_stats) over the streamable HTTP transport, backed
by the configured memory backend.

Examples:
  engram serve
  engram serve --listen :9000
  engram serve --noop`

const serveShortDesc string = "Run the engram MCP server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
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

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (default from config)")
	cmd.Flags().BoolVar(&cmder.noop, "noop", false, "Register tools but skip all backend calls")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	c.cli = logger.New(
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
	)
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()

		c.cli = logger.Multi(c.cli, logger.New(
			logger.WithJSON(true),
			logger.WithDebug(c.debug),
			logger.WithWriter(f),
		))
	}

	listen := c.listen
	if listen == "" {
		listen = c.cfg.MCP.Listen
	}

	client := remote.NewClient(remote.Config{
		Host:      c.cfg.Backend.Host,
		Namespace: c.cfg.Memory.Namespace,
		APIKey:    c.cfg.Backend.APIKey,
	}, c.logger)

	gate := availability.NewGate(availability.Config{
		RecheckInterval: time.Duration(c.cfg.Gate.RecheckSeconds) * time.Second,
	}, client)

	mcps, err := mcp.NewServer(mcp.Config{
		Backend: client,
		Gate:    gate,
		Noop:    c.noop,
		Logger:  c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	server := api.NewServer(api.Config{ListenAddr: listen}, mcps, c.logger)

	c.cli.Info("starting mcp server",
		"listen", listen,
		"backend", c.cfg.Backend.Host,
		"namespace", c.cfg.Memory.Namespace,
		"noop", c.noop,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("mcp server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.cli.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}
