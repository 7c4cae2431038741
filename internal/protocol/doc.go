// Package protocol defines the values exchanged between the Kyoto core and
// the protocol layer that decodes client requests.
//
// Command, Response, Flow and RetFlow are closed sets: each variant is a
// struct implementing an interface with an unexported marker method, so
// only this package can add variants. Consumers type-switch over them.
//
// Usage:
//
//	flow := protocol.ExecuteCommand{Command: protocol.Get{Key: "a"}}
//	ret, err := srv.HandleFlow(flow)
package protocol
