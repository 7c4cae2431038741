package connection

import (
	"context"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/protocol"
)

// Embedded executes commands on an in-process server.
type Embedded struct {
	srv *core.Server
}

// NewEmbedded wraps srv.
func NewEmbedded(srv *core.Server) *Embedded {
	return &Embedded{srv: srv}
}

// Execute parses args and runs the command.
func (e *Embedded) Execute(ctx context.Context, args []string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd, err := protocol.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	ret, err := e.srv.HandleFlow(protocol.ExecuteCommand{Command: cmd})
	if err != nil {
		return nil, err
	}
	return payloadOf(ret), nil
}

// Name implements Executor.
func (e *Embedded) Name() string { return "embedded" }

// Close implements Executor.
func (e *Embedded) Close() error { return nil }

// Server returns the wrapped server.
func (e *Embedded) Server() *core.Server { return e.srv }

func payloadOf(ret protocol.RetFlow) []byte {
	if rr, ok := ret.(protocol.ReturnResponse); ok && rr.Response != nil {
		return rr.Response.Payload()
	}
	return nil
}
