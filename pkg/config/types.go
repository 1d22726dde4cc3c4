package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent engram configuration stored as config.toml
// in the .engram/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Backend BackendConfig `toml:"backend"`
	Memory  MemoryConfig  `toml:"memory"`
	Gate    GateConfig    `toml:"gate"`
	MCP     MCPConfig     `toml:"mcp"`
}

// BackendConfig holds connection settings for the remote memory backend.
type BackendConfig struct {
	// Host is the engram server base URL.
	Host string `toml:"host,omitempty"`

	// APIKey is attached as a bearer credential when non-empty.
	APIKey string `toml:"api_key,omitempty"`
}

// MemoryConfig holds the orchestration policy knobs.
type MemoryConfig struct {
	// Namespace is the logical memory partition. Must be non-empty.
	Namespace string `toml:"namespace,omitempty"`

	// AutoRecall enables the pre-generation recall hook.
	AutoRecall bool `toml:"auto_recall"`

	// AutoCapture enables the post-generation capture hook.
	AutoCapture bool `toml:"auto_capture"`

	// MinImportance is the least importance a memory needs to be injected. 1-10.
	MinImportance int `toml:"min_importance,omitempty"`

	// MaxRecallResults caps how many memories one recall may inject.
	MaxRecallResults int `toml:"max_recall_results,omitempty"`
}

// GateConfig holds availability gate settings.
type GateConfig struct {
	// RecheckSeconds is how long a cached reachability verdict stays valid.
	// Zero caches the first verdict for the process lifetime.
	RecheckSeconds int `toml:"recheck_seconds,omitempty"`
}

// MCPConfig holds MCP tool-surface server settings.
type MCPConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// Validate checks the invariants the orchestration layer depends on.
func (c *Config) Validate() error {
	if c.Memory.Namespace == "" {
		return fmt.Errorf("memory.namespace must be a non-empty identifier")
	}

	if c.Memory.MinImportance < 1 || c.Memory.MinImportance > 10 {
		return fmt.Errorf("memory.min_importance must be in [1,10], got %d", c.Memory.MinImportance)
	}

	if c.Memory.MaxRecallResults < 1 {
		return fmt.Errorf("memory.max_recall_results must be positive, got %d", c.Memory.MaxRecallResults)
	}

	return nil
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"backend.host": {
		get: func(c *Config) string { return c.Backend.Host },
		set: func(c *Config, v string) error { c.Backend.Host = v; return nil },
	},
	"backend.api_key": {
		get: func(c *Config) string { return c.Backend.APIKey },
		set: func(c *Config, v string) error { c.Backend.APIKey = v; return nil },
	},
	"memory.namespace": {
		get: func(c *Config) string { return c.Memory.Namespace },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("memory.namespace cannot be empty")
			}
			c.Memory.Namespace = v
			return nil
		},
	},
	"memory.auto_recall": {
		get: func(c *Config) string { return strconv.FormatBool(c.Memory.AutoRecall) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for memory.auto_recall: %w", err)
			}
			c.Memory.AutoRecall = b
			return nil
		},
	},
	"memory.auto_capture": {
		get: func(c *Config) string { return strconv.FormatBool(c.Memory.AutoCapture) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for memory.auto_capture: %w", err)
			}
			c.Memory.AutoCapture = b
			return nil
		},
	},
	"memory.min_importance": {
		get: func(c *Config) string { return strconv.Itoa(c.Memory.MinImportance) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for memory.min_importance: %w", err)
			}
			if n < 1 || n > 10 {
				return fmt.Errorf("memory.min_importance must be in [1,10], got %d", n)
			}
			c.Memory.MinImportance = n
			return nil
		},
	},
	"memory.max_recall_results": {
		get: func(c *Config) string { return strconv.Itoa(c.Memory.MaxRecallResults) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for memory.max_recall_results: %w", err)
			}
			if n < 1 {
				return fmt.Errorf("memory.max_recall_results must be positive, got %d", n)
			}
			c.Memory.MaxRecallResults = n
			return nil
		},
	},
	"gate.recheck_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Gate.RecheckSeconds) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for gate.recheck_seconds: %w", err)
			}
			if n < 0 {
				return fmt.Errorf("gate.recheck_seconds cannot be negative, got %d", n)
			}
			c.Gate.RecheckSeconds = n
			return nil
		},
	},
	"mcp.listen": {
		get: func(c *Config) string { return c.MCP.Listen },
		set: func(c *Config, v string) error { c.MCP.Listen = v; return nil },
	},
}
