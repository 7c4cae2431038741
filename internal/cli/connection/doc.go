// Package connection provides the command executors used by kyoto-cli.
//
//   - embedded.go: runs commands on an in-process server
//   - socket.go: talks to a running kyoto-server over its local socket
//   - http.go: reads the admin HTTP endpoint (health, stats)
//   - manager.go: tracks the executor the REPL is currently using
//
// Over the socket, one request is one line, so keys and values cannot
// contain whitespace.
package connection
