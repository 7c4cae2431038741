package config

import (
	"os"
	"path/filepath"
)

// CLIConfig is the configuration for kyoto-cli.
type CLIConfig struct {
	Connection ConnectionSection `koanf:"connection" yaml:"connection"`
	Output     OutputSection     `koanf:"output" yaml:"output"`
	History    HistorySection    `koanf:"history" yaml:"history"`

	// Server is the kyoto-server configuration file used for the embedded
	// server. Empty uses the built-in defaults.
	Server string `koanf:"server" yaml:"server,omitempty"`
}

// ConnectionSection selects where commands run.
type ConnectionSection struct {
	// Socket is the kyoto-server local socket. Empty runs commands on an
	// embedded in-process server.
	Socket string `koanf:"socket" yaml:"socket,omitempty"`

	// HTTPAddr is the kyoto-server admin HTTP address, used by status.
	HTTPAddr string `koanf:"http_addr" yaml:"http_addr"`
}

// OutputSection configures output formatting.
type OutputSection struct {
	Format string `koanf:"format" yaml:"format"` // text, json, yaml
}

// HistorySection configures REPL history.
type HistorySection struct {
	File string `koanf:"file" yaml:"file"`
	Size int    `koanf:"size" yaml:"size"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	homeDir, _ := os.UserHomeDir()
	return &CLIConfig{
		Connection: ConnectionSection{
			HTTPAddr: "127.0.0.1:9737",
		},
		Output: OutputSection{
			Format: "text",
		},
		History: HistorySection{
			File: filepath.Join(homeDir, ".kyoto", "history"),
			Size: 1000,
		},
	}
}
