package config

const (
	defaultHost      = "http://localhost:8000"
	defaultNamespace = "default"

	defaultMinImportance    = 5
	defaultMaxRecallResults = 10

	defaultGateRecheckSeconds = 0

	defaultMCPListen = ":8765"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Backend: BackendConfig{
			Host: defaultHost,
		},
		Memory: MemoryConfig{
			Namespace:        defaultNamespace,
			AutoRecall:       true,
			AutoCapture:      true,
			MinImportance:    defaultMinImportance,
			MaxRecallResults: defaultMaxRecallResults,
		},
		Gate: GateConfig{
			RecheckSeconds: defaultGateRecheckSeconds,
		},
		MCP: MCPConfig{
			Listen: defaultMCPListen,
		},
	}
}
