// Package output provides output formatting for kyoto-cli.
//
//   - formatter.go: Formatter interface, factory and the Result type
//   - text.go: human-readable output
//   - json.go: JSON output
//   - yaml.go: YAML output
//
// JSON and YAML are meant for scripts; text prints payloads as the server
// returned them.
package output
