package protocol

// Response is the payload returned to the caller after a command ran.
type Response interface {
	// Payload returns the response bytes.
	Payload() []byte
	isResponse()
}

// Valid is a successful response carrying a byte payload.
type Valid struct {
	Message []byte
}

// Payload implements Response.
func (v Valid) Payload() []byte { return v.Message }

func (Valid) isResponse() {}
