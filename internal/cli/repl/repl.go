package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/kyoto-db/kyoto/internal/cli/connection"
	"github.com/kyoto-db/kyoto/internal/cli/output"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	manager   *connection.Manager
	formatter output.Formatter
	completer *Completer
	history   *History
	logger    logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormatter sets the result formatter.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) { r.formatter = f }
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) { r.history = h }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) { r.logger = l }
}

// New creates a REPL running commands through mgr.
func New(mgr *connection.Manager, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		manager:   mgr,
		formatter: &output.TextFormatter{},
		completer: NewCompleter(),
		history:   NewHistory("", DefaultHistorySize),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads and evaluates lines until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err == io.EOF && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		r.eval(ctx, line)
	}
}

func (r *REPL) prompt() string {
	if r.manager.IsConnected() {
		return "kyoto(" + r.manager.Current().Name() + ")> "
	}
	return "kyoto> "
}

func (r *REPL) eval(ctx context.Context, line string) {
	args := strings.Fields(line)

	switch strings.ToLower(args[0]) {
	case "help":
		r.help(args[1:])
		return
	case "history":
		r.showHistory(args[1:])
		return
	case "connect":
		if len(args) != 2 {
			fmt.Fprintln(r.output, "usage: connect <socket-path>")
			return
		}
		client := connection.NewSocketClient(args[1])
		if err := client.Connect(); err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
			return
		}
		r.manager.Use(client)
		fmt.Fprintf(r.output, "connected to %s\n", client.Name())
		return
	case "disconnect":
		r.manager.Reset()
		fmt.Fprintln(r.output, "using embedded server")
		return
	}

	r.execute(ctx, args)
}

func (r *REPL) execute(ctx context.Context, args []string) {
	requestID := ulid.Make().String()
	exec := r.manager.Current()
	log := r.logger.With("request_id", requestID, "target", exec.Name())

	result := output.Result{
		RequestID: requestID,
		Command:   strings.ToUpper(args[0]),
	}

	payload, err := exec.Execute(logger.WithRequestID(ctx, requestID), args)
	if err != nil {
		log.Debug("command failed", "command", result.Command, "error", err)
		result.Error = err.Error()
	} else {
		log.Debug("command executed", "command", result.Command, "response_size", len(payload))
		result.Response = string(payload)
	}

	if err := r.formatter.Format(r.output, result); err != nil {
		fmt.Fprintf(r.output, "(error) format output: %v\n", err)
	}
}

func (r *REPL) help(args []string) {
	if len(args) == 1 {
		for _, cmd := range r.completer.Complete(args[0]) {
			fmt.Fprintln(r.output, cmd)
		}
		return
	}

	fmt.Fprint(r.output, `Commands:
  GET <key>            read a key
  SET <key> <value>    write a key
  INFO                 show server information
Builtins:
  connect <socket>     run commands on a running kyoto-server
  disconnect           return to the embedded server
  history [n]          show the last n lines
  help [prefix]        show this help or matching commands
  exit, quit           leave
`)
}

func (r *REPL) showHistory(args []string) {
	n := r.history.Len()
	if len(args) == 1 {
		if v, err := strconv.Atoi(args[0]); err == nil && v >= 0 && v < n {
			n = v
		}
	}
	for i := n - 1; i >= 0; i-- {
		fmt.Fprintf(r.output, "%4d  %s\n", r.history.Len()-i, r.history.Get(i))
	}
}
