// main.go - pgbackrest command-line entry point.
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"os"

	"github.com/archivewright/pgbackrest"
	"github.com/archivewright/pgbackrest/internal/commands"
)

func main() {
	env := pgbackrest.NewStdlibExecEnv()

	root := &pgbackrest.RootCommand[*pgbackrest.StdlibExecEnv]{
		AutoCancel: true,
		Command: &pgbackrest.LeafCommand[*pgbackrest.StdlibExecEnv]{
			BriefDescriptionText: "Reliable backup and restore for PostgreSQL.",
			RunFunc:              run,
		},
	}
	root.Main(env)
}

// run parses the process's full command line and environment and
// dispatches to the resolved command's stub implementation. Command
// routing is not delegated to a generic subcommand dispatcher: the
// argument scanner already classifies the command as part of parsing,
// so a second, independent router would just re-derive the same
// answer and risk disagreeing with it.
func run(ctx context.Context, args *pgbackrest.CommandArgs[*pgbackrest.StdlibExecEnv]) error {
	cfg, err := pgbackrest.Parse(args.Env.Args(), os.Environ(), args.Env.Stderr())
	if err != nil {
		return err
	}
	return commands.Run(ctx, cfg, args.Env.Stdout())
}
