package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/engram-memory/engram/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the ENGRAM_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound by the calling command)
//  2. Environment variables (ENGRAM_BACKEND_HOST, ENGRAM_MEMORY_NAMESPACE, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: ENGRAM_BACKEND_HOST, ENGRAM_MEMORY_AUTO_RECALL, etc.
	v.SetEnvPrefix("ENGRAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Backend
	v.SetDefault("backend.host", d.Backend.Host)
	v.SetDefault("backend.api_key", d.Backend.APIKey)

	// Memory
	v.SetDefault("memory.namespace", d.Memory.Namespace)
	v.SetDefault("memory.auto_recall", d.Memory.AutoRecall)
	v.SetDefault("memory.auto_capture", d.Memory.AutoCapture)
	v.SetDefault("memory.min_importance", d.Memory.MinImportance)
	v.SetDefault("memory.max_recall_results", d.Memory.MaxRecallResults)

	// Gate
	v.SetDefault("gate.recheck_seconds", d.Gate.RecheckSeconds)

	// MCP
	v.SetDefault("mcp.listen", d.MCP.Listen)
}

// FromViper materializes a Config from a viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Backend: BackendConfig{
			Host:   v.GetString("backend.host"),
			APIKey: v.GetString("backend.api_key"),
		},
		Memory: MemoryConfig{
			Namespace:        v.GetString("memory.namespace"),
			AutoRecall:       v.GetBool("memory.auto_recall"),
			AutoCapture:      v.GetBool("memory.auto_capture"),
			MinImportance:    v.GetInt("memory.min_importance"),
			MaxRecallResults: v.GetInt("memory.max_recall_results"),
		},
		Gate: GateConfig{
			RecheckSeconds: v.GetInt("gate.recheck_seconds"),
		},
		MCP: MCPConfig{
			Listen: v.GetString("mcp.listen"),
		},
	}
}
