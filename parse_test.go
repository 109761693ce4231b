// parse_test.go - end-to-end tests for the five-phase pipeline.
// SPDX-License-Identifier: GPL-3.0-or-later

package pgbackrest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archivewright/pgbackrest"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeQualifierEndToEnd(t *testing.T) {
	cfg, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--buffer-size=2GB", "backup"},
		nil, nil)
	require.NoError(t, err)

	v, ok := cfg.At(optmeta.BufferSizeOption, 0)
	require.True(t, ok)
	assert.True(t, v.Set)
	assert.Equal(t, int64(2*1024*1024*1024), v.Value.Int)
}

func TestParseNegatePrecedenceOverDefault(t *testing.T) {
	cfg, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--no-online", "backup"},
		nil, nil)
	require.NoError(t, err)

	v, ok := cfg.At(optmeta.OnlineOption, 0)
	require.True(t, ok)
	assert.True(t, v.Set)
	assert.True(t, v.Negate)
}

func TestParseDuplicateKeyInConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "pgbackrest.conf")
	contents := "[global]\ncompress-type=gz\ncompress-type=lz4\n"
	require.NoError(t, os.WriteFile(confPath, []byte(contents), 0o644))

	_, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--config=" + confPath, "backup"},
		nil, nil)
	var target perror.OptionInvalidError
	require.ErrorAs(t, err, &target)
}

func TestParseLegacyFlatRepoPathAliasesIndexOne(t *testing.T) {
	cfg, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--repo-path=/var/lib/pgbackrest", "backup"},
		nil, nil)
	require.NoError(t, err)

	v, ok := cfg.At(optmeta.RepoPathOption, 0)
	require.True(t, ok)
	assert.True(t, v.Set)
	assert.Equal(t, "/var/lib/pgbackrest", v.Value.Str)
}

func TestParseDependencyFailureWording(t *testing.T) {
	_, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--spool-path=/var/spool/pgbackrest", "archive-push"},
		nil, nil)
	var target perror.OptionInvalidError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Error(), "option 'spool-path' not valid without option 'archive-async'")
}

func TestParseGroupCompactionRendersDenseExternalIndexes(t *testing.T) {
	cfg, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--pg1-path=/data/pg1", "--pg3-path=/data/pg3", "backup"},
		nil, nil)
	require.NoError(t, err)

	gs, ok := cfg.Group(optmeta.PgGroup)
	require.True(t, ok)
	assert.Equal(t, 2, gs.IndexTotal)
	assert.Equal(t, []int{1, 3}, gs.ExternalToRaw)

	v0, ok := cfg.At(optmeta.PgPathOption, 0)
	require.True(t, ok)
	assert.Equal(t, "/data/pg1", v0.Value.Str)

	v1, ok := cfg.At(optmeta.PgPathOption, 1)
	require.True(t, ok)
	assert.Equal(t, "/data/pg3", v1.Value.Str)
}

func TestParseRequiredOptionMissingErrors(t *testing.T) {
	_, err := pgbackrest.Parse([]string{"pgbackrest", "backup"}, nil, nil)
	var target perror.OptionRequiredError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Error(), "backup command requires option: stanza")
}

func TestParseNoCommandYieldsHelp(t *testing.T) {
	cfg, err := pgbackrest.Parse([]string{"pgbackrest"}, nil, nil)
	require.NoError(t, err)
	assert.True(t, cfg.HelpRequested)
	assert.Equal(t, optmeta.HelpCommand, cfg.CommandID)
}

func TestParseEnvNeverOverridesParam(t *testing.T) {
	cfg, err := pgbackrest.Parse(
		[]string{"pgbackrest", "--stanza=main", "--compress-type=lz4", "backup"},
		[]string{"PGBACKREST_COMPRESS_TYPE=zst"}, nil)
	require.NoError(t, err)

	v, ok := cfg.At(optmeta.CompressTypeOption, 0)
	require.True(t, ok)
	assert.Equal(t, "lz4", v.Value.Str)
}

func TestParseIsIndependentAcrossCalls(t *testing.T) {
	argv1 := []string{"pgbackrest", "--stanza=first", "--pg1-path=/data/a", "backup"}
	argv2 := []string{"pgbackrest", "--stanza=second", "--pg1-path=/data/b", "--pg2-path=/data/c", "backup"}

	cfg1, err := pgbackrest.Parse(argv1, nil, nil)
	require.NoError(t, err)
	cfg2, err := pgbackrest.Parse(argv2, nil, nil)
	require.NoError(t, err)

	gs1, ok := cfg1.Group(optmeta.PgGroup)
	require.True(t, ok)
	assert.Equal(t, 1, gs1.IndexTotal)

	gs2, ok := cfg2.Group(optmeta.PgGroup)
	require.True(t, ok)
	assert.Equal(t, 2, gs2.IndexTotal)
}
