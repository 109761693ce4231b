// commands.go - stub command implementations.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package commands holds the per-command implementations that consume
// a resolved [config.Config]. The configuration parser (spec.md §1)
// treats these as external collaborators with contracts only; what
// follows are thin stand-ins that exercise the resolved fields a real
// implementation would need, not full backup/restore logic.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/archivewright/pgbackrest/pkg/config"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
)

// Run dispatches cfg to the stub implementation of its resolved
// command and writes a one-line summary to out.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if cfg.HelpRequested {
		fmt.Fprintln(out, "usage: pgbackrest <command> [options]")
		return nil
	}

	switch cfg.CommandID {
	case optmeta.BackupCommand:
		return runBackup(ctx, cfg, out)
	case optmeta.RestoreCommand:
		return runRestore(ctx, cfg, out)
	case optmeta.ArchivePushCommand:
		return runArchivePush(ctx, cfg, out)
	case optmeta.ArchiveGetCommand:
		return runArchiveGet(ctx, cfg, out)
	case optmeta.CheckCommand:
		return runCheck(ctx, cfg, out)
	case optmeta.InfoCommand:
		return runInfo(ctx, cfg, out)
	case optmeta.StanzaCreateCommand:
		return runStanzaCreate(ctx, cfg, out)
	default:
		fmt.Fprintf(out, "command '%s' is not implemented\n", optmeta.CommandName(cfg.CommandID))
		return nil
	}
}

func stanzaName(cfg *config.Config) string {
	v, ok := cfg.At(optmeta.StanzaOption, 0)
	if !ok || !v.Set {
		return "(none)"
	}
	return v.Value.Str
}

func runBackup(_ context.Context, cfg *config.Config, out io.Writer) error {
	standby, _ := cfg.At(optmeta.BackupStandbyOption, 0)
	compress, _ := cfg.At(optmeta.CompressTypeOption, 0)
	fmt.Fprintf(out, "backup: stanza=%s standby=%t compress=%s\n", stanzaName(cfg), standby.Value.Bool, compress.Value.Str)
	return nil
}

func runRestore(_ context.Context, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "restore: stanza=%s\n", stanzaName(cfg))
	return nil
}

func runArchivePush(_ context.Context, cfg *config.Config, out io.Writer) error {
	async, _ := cfg.At(optmeta.ArchiveAsyncOption, 0)
	fmt.Fprintf(out, "archive-push: stanza=%s async=%t params=%v\n", stanzaName(cfg), async.Value.Bool, cfg.CommandParams)
	return nil
}

func runArchiveGet(_ context.Context, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "archive-get: stanza=%s params=%v\n", stanzaName(cfg), cfg.CommandParams)
	return nil
}

func runCheck(_ context.Context, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "check: stanza=%s\n", stanzaName(cfg))
	return nil
}

func runInfo(_ context.Context, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "info: stanza=%s\n", stanzaName(cfg))
	return nil
}

func runStanzaCreate(_ context.Context, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "stanza-create: stanza=%s\n", stanzaName(cfg))
	return nil
}
