package protocol

// Flow is an instruction routed from the protocol layer.
// The core only acts on ExecuteCommand.
type Flow interface {
	isFlow()
}

// ExecuteCommand asks the core to run Command.
type ExecuteCommand struct {
	Command Command
}

// ParseRequest carries raw, still undecoded request bytes.
type ParseRequest struct {
	Raw []byte
}

// CloseConnection asks the connection owner to hang up.
type CloseConnection struct{}

func (ExecuteCommand) isFlow()  {}
func (ParseRequest) isFlow()    {}
func (CloseConnection) isFlow() {}

// RetFlow is what a flow handler hands back to the protocol layer.
type RetFlow interface {
	isRetFlow()
}

// ReturnResponse asks the protocol layer to send Response to the client.
type ReturnResponse struct {
	Response Response
}

func (ReturnResponse) isRetFlow() {}
