package protocol

import (
	"strings"

	"github.com/kyoto-db/kyoto/internal/core/domain"
)

// ParseArgs builds a Command from whitespace-split words, as typed at the
// CLI or REPL. The verb is case-insensitive; keys and values are kept verbatim.
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, domain.ErrUnknownCommand.WithDetails("empty command")
	}

	verb := strings.ToUpper(args[0])
	rest := args[1:]

	switch verb {
	case VerbGet:
		if len(rest) != 1 {
			return nil, domain.ErrWrongArity.WithDetails("GET expects 1 argument")
		}
		return Get{Key: rest[0]}, nil
	case VerbSet:
		if len(rest) != 2 {
			return nil, domain.ErrWrongArity.WithDetails("SET expects 2 arguments")
		}
		return Set{Key: rest[0], Value: []byte(rest[1])}, nil
	case VerbInfo:
		if len(rest) != 0 {
			return nil, domain.ErrWrongArity.WithDetails("INFO expects no arguments")
		}
		return Info{}, nil
	default:
		return nil, domain.ErrUnknownCommand.WithDetails(args[0])
	}
}
