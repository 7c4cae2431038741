package repl

import (
	"sort"
	"strings"
)

// Completer suggests commands and builtins for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	commands := []string{
		"GET", "SET", "INFO",
		"connect", "disconnect", "help", "history", "exit", "quit",
	}
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Complete returns the commands starting with prefix, ignoring case.
// An empty prefix matches nothing.
func (c *Completer) Complete(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToLower(cmd), strings.ToLower(prefix)) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Commands returns every known command.
func (c *Completer) Commands() []string {
	return append([]string(nil), c.commands...)
}
