package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kyoto-db/kyoto/internal/cli/connection"
	"github.com/kyoto-db/kyoto/internal/cli/output"
	"github.com/kyoto-db/kyoto/internal/core/state"
)

// Status is what the status command reports.
type Status struct {
	Address string          `json:"address" yaml:"address"`
	Health  string          `json:"health" yaml:"health"`
	Stats   state.DataStats `json:"stats" yaml:"stats"`
}

// StatusCommand reads health and statistics from the admin HTTP endpoint.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show health and statistics of a running kyoto-server",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 10 * time.Second,
			},
		},
		Action: func(c *cli.Context) error {
			env := GetEnv(c)
			client := connection.NewHTTPClient(env.Config.Connection.HTTPAddr)

			ctx, cancel := context.WithTimeout(contextOf(c), c.Duration("timeout"))
			defer cancel()

			var health struct {
				Status string `json:"status"`
			}
			if err := client.GetJSON(ctx, "/healthz", &health); err != nil {
				return fmt.Errorf("health check %s: %w", client.BaseURL(), err)
			}

			status := Status{Address: client.BaseURL(), Health: health.Status}
			if err := client.GetJSON(ctx, "/stats", &status.Stats); err != nil {
				return fmt.Errorf("read stats %s: %w", client.BaseURL(), err)
			}

			if env.Format == output.FormatText {
				return env.Formatter.Format(env.Out, status.fields())
			}
			return env.Formatter.Format(env.Out, status)
		},
	}
}

func (s Status) fields() map[string]string {
	return map[string]string{
		"address":                  s.Address,
		"health":                   s.Health,
		"total_keys":               strconv.Itoa(s.Stats.TotalKeys),
		"total_commands_processed": strconv.FormatUint(s.Stats.CommandsProcessed, 10),
		"keyspace_hits":            strconv.FormatUint(s.Stats.KeyspaceHits, 10),
		"keyspace_misses":          strconv.FormatUint(s.Stats.KeyspaceMisses, 10),
	}
}
