// Package config provides configuration management for the sqlstudio CLI.
//
// Configuration is layered: built-in defaults, then an optional
// sqlstudio.yaml file, then SQLSTUDIO_ environment variables, then
// explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// GraphPath is the schema graph JSON document the path, suggest and
	// analyze --graph commands operate on.
	GraphPath string `koanf:"graph"`
	// Dialect selects the SQL dialect for generation (mysql|sqlserver).
	Dialect string `koanf:"dialect"`
	// Pretty renders generated SQL with one clause per line.
	Pretty bool `koanf:"pretty"`
	// MaxDepth bounds join path search.
	MaxDepth int `koanf:"max_depth"`
	// OutputFormat selects command output rendering (table|json).
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultDialect  = "mysql"
	DefaultMaxDepth = 5
	DefaultOutput   = "table"
)

// DefaultConfig returns a Config populated with defaults only.
func DefaultConfig() *Config {
	return &Config{
		Dialect:      DefaultDialect,
		MaxDepth:     DefaultMaxDepth,
		OutputFormat: DefaultOutput,
	}
}
