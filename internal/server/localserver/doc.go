// Package localserver provides the local management socket.
//
// It listens on a Unix domain socket and accepts one command per line
// (GET key, SET key value, INFO). Each connection runs on its own clone of
// the shared server. A valid response is written as "$<length>\n" followed by
// the payload and a newline; a failure is written as "-<error>\n".
//
// The socket is for local administration and debugging. It is not the
// client wire protocol.
package localserver
