// parse.go - top-level configuration parsing entry point.
// SPDX-License-Identifier: GPL-3.0-or-later

package pgbackrest

import (
	"io"

	"github.com/archivewright/pgbackrest/internal/argscan"
	"github.com/archivewright/pgbackrest/internal/envscan"
	"github.com/archivewright/pgbackrest/internal/fileload"
	"github.com/archivewright/pgbackrest/internal/groupcompact"
	"github.com/archivewright/pgbackrest/internal/logx"
	"github.com/archivewright/pgbackrest/internal/resolve"
	"github.com/archivewright/pgbackrest/internal/storage"
	"github.com/archivewright/pgbackrest/pkg/config"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
)

// Parse runs the five-phase configuration pipeline described in the
// package doc comment: argument scan, environment scan, config file
// load, group compaction, and dependency-resolved validation. argv must
// include the program name at index 0; env is each process environment
// entry in "NAME=VALUE" form (normally [os.Environ]). resetLog, if
// non-nil, receives warnings emitted while parsing; a nil resetLog
// discards them.
//
// Parse never touches package-level state: every call is independent,
// which is what makes scenario-driven tests able to inject synthetic
// argv/env without interference between cases.
func Parse(argv []string, env []string, resetLog io.Writer) (*config.Config, error) {
	logger := logx.Discard
	if resetLog != nil {
		logger = logx.New(resetLog)
	}

	scan, err := argscan.Scan(argv, logger)
	if err != nil {
		return nil, err
	}

	b := config.NewBuilder()

	if !scan.HasCommand {
		b.SetCommand(optmeta.HelpCommand, scan.Role, scan.Params, true, scan.ExePath)
		return b.Build(), nil
	}

	if err := envscan.Apply(env, scan.Table, scan.Command, logger); err != nil {
		return nil, err
	}

	store := storage.NewLocalStorage()
	if err := fileload.Load(scan.Table, store, scan.Command, logger); err != nil {
		return nil, err
	}

	groups, err := groupcompact.Compact(scan.Table, scan.Command)
	if err != nil {
		return nil, err
	}

	if err := resolve.Resolve(b, scan.Table, groups, scan.Command, scan.HelpRequested); err != nil {
		return nil, err
	}
	b.SetCommand(scan.Command, scan.Role, scan.Params, scan.HelpRequested, scan.ExePath)
	return b.Build(), nil
}
