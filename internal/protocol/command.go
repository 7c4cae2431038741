package protocol

// Command verbs.
const (
	VerbGet  = "GET"
	VerbSet  = "SET"
	VerbInfo = "INFO"
)

// Command is a decoded client instruction.
type Command interface {
	// Name returns the command verb.
	Name() string
	isCommand()
}

// Get looks up a single key.
type Get struct {
	Key string
}

// Set stores Value under Key, replacing any previous value.
type Set struct {
	Key   string
	Value []byte
}

// Info requests the server information report.
type Info struct{}

func (Get) Name() string  { return VerbGet }
func (Set) Name() string  { return VerbSet }
func (Info) Name() string { return VerbInfo }

func (Get) isCommand()  {}
func (Set) isCommand()  {}
func (Info) isCommand() {}
