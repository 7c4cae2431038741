package command

import (
	"github.com/urfave/cli/v2"

	"github.com/kyoto-db/kyoto/internal/cli/repl"
)

// ReplCommand starts the interactive mode.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(c *cli.Context) error {
			env := GetEnv(c)

			history := repl.NewHistory(env.Config.History.File, env.Config.History.Size)
			if err := history.Load(); err != nil {
				env.Logger.Warn("load history failed", "error", err)
			}
			defer func() {
				if err := history.Save(); err != nil {
					env.Logger.Warn("save history failed", "error", err)
				}
			}()

			r := repl.New(env.Manager,
				repl.WithIO(c.App.Reader, env.Out),
				repl.WithFormatter(env.Formatter),
				repl.WithHistory(history),
				repl.WithLogger(env.Logger),
			)
			return r.Run(contextOf(c))
		},
	}
}
