package command

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/kyoto-db/kyoto/internal/cli/output"
	"github.com/kyoto-db/kyoto/internal/protocol"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// ExecCommand runs any command given as words.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Run a command (GET, SET, INFO)",
		ArgsUsage: "<verb> [args...]",
		Action: func(c *cli.Context) error {
			return runCommand(c, c.Args().Slice())
		},
	}
}

// GetCommand reads a key.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a key",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			return runCommand(c, append([]string{protocol.VerbGet}, c.Args().Slice()...))
		},
	}
}

// SetCommand writes a key.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a key",
		ArgsUsage: "<key> <value>",
		Action: func(c *cli.Context) error {
			return runCommand(c, append([]string{protocol.VerbSet}, c.Args().Slice()...))
		},
	}
}

// InfoCommand prints server information.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Show server information",
		Action: func(c *cli.Context) error {
			return runCommand(c, append([]string{protocol.VerbInfo}, c.Args().Slice()...))
		},
	}
}

func runCommand(c *cli.Context, args []string) error {
	env := GetEnv(c)
	if len(args) == 0 {
		return cli.ShowSubcommandHelp(c)
	}

	requestID := ulid.Make().String()
	exec := env.Manager.Current()
	ctx := logger.WithLogger(contextOf(c), env.Logger)
	ctx = logger.WithRequestID(ctx, requestID)
	log := logger.L(ctx).With("target", exec.Name())

	result := output.Result{
		RequestID: requestID,
		Command:   strings.ToUpper(args[0]),
	}

	payload, err := exec.Execute(ctx, args)
	if err != nil {
		log.Debug("command failed", "error", err)
		result.Error = err.Error()
	} else {
		log.Debug("command executed", "response_size", len(payload))
		result.Response = string(payload)
	}

	if ferr := env.Formatter.Format(env.Out, result); ferr != nil {
		return ferr
	}
	if err != nil {
		return ErrCommandFailed
	}
	return nil
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
