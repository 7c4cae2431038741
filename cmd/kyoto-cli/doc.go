// Package main provides the entry point for kyoto-cli.
//
// kyoto-cli runs GET, SET and INFO either on an embedded in-process server
// or on a running kyoto-server through its local socket, in single-command
// mode or interactive REPL mode.
package main
