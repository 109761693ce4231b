// example_test.go - example usage of the command entry point
// SPDX-License-Identifier: GPL-3.0-or-later

package pgbackrest_test

import (
	"context"
	"os"

	"github.com/archivewright/pgbackrest"
	"github.com/archivewright/pgbackrest/internal/commands"
)

var rootCommand = &pgbackrest.RootCommand[*pgbackrest.StdlibExecEnv]{
	Command: &pgbackrest.LeafCommand[*pgbackrest.StdlibExecEnv]{
		BriefDescriptionText: "Reliable backup and restore for PostgreSQL.",
		RunFunc: func(ctx context.Context, args *pgbackrest.CommandArgs[*pgbackrest.StdlibExecEnv]) error {
			cfg, err := pgbackrest.Parse(args.Env.Args(), os.Environ(), args.Env.Stderr())
			if err != nil {
				return err
			}
			return commands.Run(ctx, cfg, args.Env.Stdout())
		},
	},
}

// This example shows how the five-phase configuration pipeline is
// wired into a runnable command: the real entry point (cmd/pgbackrest)
// follows the same shape.
func Example() {
	env := pgbackrest.NewStdlibExecEnv()
	rootCommand.Main(env)
}
