// envscan.go - phase 2, environment scan.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package envscan implements phase 2 of the parser pipeline: for every
// process environment variable prefixed PGBACKREST_, resolve it to an
// option and, unless already set by the command line, record it as a
// Config-sourced value (spec.md §4.3).
package envscan

import (
	"fmt"
	"strings"

	"github.com/archivewright/pgbackrest/internal/logx"
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
)

const envPrefix = "PGBACKREST_"

// Apply walks env (each entry in "NAME=VALUE" form, as returned by
// [os.Environ]) and populates table for options valid under cmd.
// Values already present in table with source=Param are left
// untouched: the command line always wins (spec.md §4.3 step 6).
func Apply(env []string, table *parseopt.Table, cmd optmeta.CommandID, logger logx.Logger) error {
	if logger == nil {
		logger = logx.Discard
	}
	for _, entry := range env {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		if err := applyOne(name, value, table, cmd, logger); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(name, value string, table *parseopt.Table, cmd optmeta.CommandID, logger logx.Logger) error {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", "-")

	bare, negate, reset := optmeta.SplitModifier(key)
	if negate || reset {
		logger.Warnf("environment variable '%s' names a negate/reset form and is ignored", name)
		return nil
	}

	resolved, ok := optmeta.ResolveBareName(bare)
	if !ok {
		logger.Warnf("environment variable '%s' does not match a known option", name)
		return nil
	}
	meta := optmeta.Lookup(resolved.ID)
	perror.Assertf(meta != nil, "resolved option id %d missing from table", resolved.ID)

	if !meta.ValidForCommand(cmd) {
		return nil
	}
	if value == "" {
		return perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"environment variable '%s' must have a value", name)}
	}

	if pv, found := table.Peek(resolved.ID, resolved.RawIndex); found && pv.Found {
		return nil
	}

	pv := table.Get(resolved.ID, resolved.RawIndex)
	pv.Source = parseopt.SourceConfig

	if meta.Type == optmeta.Boolean {
		switch value {
		case "y":
			pv.Found = true
		case "n":
			pv.Found = true
			pv.Negate = true
		default:
			return perror.OptionInvalidValueError{Message: fmt.Sprintf(
				"environment boolean option '%s' must be 'y' or 'n'", name)}
		}
		return nil
	}

	pv.Found = true
	if meta.Multi {
		pv.Values = strings.Split(value, ":")
	} else {
		pv.Values = []string{value}
	}
	return nil
}
