// Package config defines the kyoto-cli configuration.
//
// The file lives at ~/.kyoto/cli.yaml by default and is overridden by
// KYOTO_CLI_* environment variables (KYOTO_CLI_CONNECTION_SOCKET maps to
// connection.socket) and then by command-line flags.
package config
