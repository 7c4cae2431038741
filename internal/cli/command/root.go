package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/kyoto-db/kyoto/internal/cli/config"
	"github.com/kyoto-db/kyoto/internal/cli/connection"
	"github.com/kyoto-db/kyoto/internal/cli/output"
	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/infra/buildinfo"
	"github.com/kyoto-db/kyoto/internal/infra/confloader"
	"github.com/kyoto-db/kyoto/internal/server/config"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// ErrCommandFailed is returned after a failed command has already been
// reported on the output.
var ErrCommandFailed = errors.New("command failed")

const envKey = "env"

// Env is the state shared by all commands of one invocation.
type Env struct {
	Config    *cliconfig.CLIConfig
	Manager   *connection.Manager
	Format    output.Format
	Formatter output.Formatter
	Logger    logger.Logger
	Out       io.Writer
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kyoto-cli",
		Usage:   "Kyoto key-value command-line tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			GetCommand(),
			SetCommand(),
			InfoCommand(),
			ReplCommand(),
			StatusCommand(),
		},
		Before: setup,
		After:  teardown,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.kyoto/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "server-config",
			Usage:   "kyoto-server config file for the embedded server",
			EnvVars: []string{"KYOTO_CLI_SERVER"},
		},
		&cli.StringFlag{
			Name:    "socket",
			Aliases: []string{"s"},
			Usage:   "run commands on the kyoto-server listening on this Unix socket",
			EnvVars: []string{"KYOTO_SOCKET"},
		},
		&cli.StringFlag{
			Name:  "http",
			Usage: "kyoto-server admin HTTP address, for status",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log debug output to stderr",
		},
	}
}

// flagOverrides maps explicitly set flags onto CLI config keys.
func flagOverrides(c *cli.Context) map[string]any {
	keys := map[string]string{
		"server-config": "server",
		"socket":        "connection.socket",
		"http":          "connection.http_addr",
		"output":        "output.format",
	}

	overrides := make(map[string]any)
	for flag, key := range keys {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	return overrides
}

func setup(c *cli.Context) error {
	cfg, err := cliconfig.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	log := logger.Nop()
	if c.Bool("verbose") {
		log, err = logger.New(logger.Config{Level: "debug", Format: "text", Output: c.App.ErrWriter})
		if err != nil {
			return err
		}
	}

	embedded, err := newEmbeddedServer(cfg.Server, log)
	if err != nil {
		return err
	}

	mgr := connection.NewManager(connection.NewEmbedded(embedded))
	if cfg.Connection.Socket != "" {
		if err := mgr.Use(connection.NewSocketClient(cfg.Connection.Socket)); err != nil {
			return err
		}
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	c.App.Metadata = map[string]any{
		envKey: &Env{
			Config:    cfg,
			Manager:   mgr,
			Format:    format,
			Formatter: output.NewFormatter(format),
			Logger:    log,
			Out:       out,
		},
	}
	return nil
}

func teardown(c *cli.Context) error {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env.Manager.Close()
	}
	return nil
}

// newEmbeddedServer builds the in-process server from the kyoto-server
// config file at path, or from defaults and KYOTO_ variables when empty.
func newEmbeddedServer(path string, log logger.Logger) (*core.Server, error) {
	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return core.New(core.WithConfig(cfg), core.WithLogger(log))
}

// GetEnv retrieves the invocation state from context.
func GetEnv(c *cli.Context) *Env {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env
	}
	return nil
}
