// Package command provides the kyoto-cli command definitions.
//
// It uses urfave/cli/v2. Commands run on an embedded in-process server by
// default, or on a running kyoto-server when --socket is given:
//
//	kyoto-cli exec SET greeting hello
//	kyoto-cli get greeting
//	kyoto-cli --output json info
//	kyoto-cli --socket /run/kyoto.sock repl
//	kyoto-cli status
package command
