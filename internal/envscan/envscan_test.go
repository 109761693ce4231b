// envscan_test.go - phase 2 tests.
// SPDX-License-Identifier: GPL-3.0-or-later

package envscan_test

import (
	"testing"

	"github.com/archivewright/pgbackrest/internal/envscan"
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySetsOptionFromEnv(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_STANZA=main"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)

	pv, ok := table.Peek(optmeta.StanzaOption, 0)
	require.True(t, ok)
	assert.True(t, pv.Found)
	assert.Equal(t, parseopt.SourceConfig, pv.Source)
	assert.Equal(t, []string{"main"}, pv.Values)
}

func TestApplyDoesNotOverwriteParam(t *testing.T) {
	table := parseopt.NewTable()
	pv := table.Get(optmeta.StanzaOption, 0)
	pv.Found = true
	pv.Source = parseopt.SourceParam
	pv.Values = []string{"cli-value"}

	err := envscan.Apply([]string{"PGBACKREST_STANZA=env-value"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli-value"}, pv.Values)
}

func TestApplyBooleanYesNo(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_ONLINE=n"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)

	pv, ok := table.Peek(optmeta.OnlineOption, 0)
	require.True(t, ok)
	assert.True(t, pv.Negate)
}

func TestApplyBooleanInvalidValue(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_ONLINE=maybe"}, table, optmeta.BackupCommand, nil)
	var target perror.OptionInvalidValueError
	require.ErrorAs(t, err, &target)
}

func TestApplyEmptyValue(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_STANZA="}, table, optmeta.BackupCommand, nil)
	var target perror.OptionInvalidValueError
	require.ErrorAs(t, err, &target)
}

func TestApplyIgnoresNonPrefixedVars(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PATH=/usr/bin"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)
	assert.Empty(t, table.Indexes(optmeta.StanzaOption))
}

func TestApplyMultiSplitsOnColon(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_PG1_PATH=/a:/b"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)

	pv, ok := table.Peek(optmeta.PgPathOption, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"/a", "/b"}, pv.Values)
}

func TestApplyNegateFormNameWarnsAndSkips(t *testing.T) {
	table := parseopt.NewTable()
	err := envscan.Apply([]string{"PGBACKREST_NO_ONLINE=y"}, table, optmeta.BackupCommand, nil)
	require.NoError(t, err)
	assert.Empty(t, table.Indexes(optmeta.OnlineOption))
}
