// Package repl provides the interactive mode of kyoto-cli.
//
// Each non-empty line is either a builtin (help, history, connect,
// disconnect, exit) or a command (GET, SET, INFO) run on the active
// executor. Every command line is tagged with a ULID request ID for
// logging and structured output.
package repl
