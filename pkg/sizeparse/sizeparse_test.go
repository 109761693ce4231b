// sizeparse_test.go - tests for the size-qualifier parser.
// SPDX-License-Identifier: GPL-3.0-or-later

package sizeparse_test

import (
	"strconv"
	"testing"

	"github.com/archivewright/pgbackrest/pkg/sizeparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int64
	}{
		{"bare integer", "2147483648", 2147483648},
		{"kb suffix", "2kb", 2 * 1024},
		{"k suffix", "2k", 2 * 1024},
		{"mb suffix", "2mb", 2 * 1024 * 1024},
		{"gb suffix", "2gb", 2 * 1024 * 1024 * 1024},
		{"scenario1 2GB", "2GB", 2147483648},
		{"bytes explicit", "512b", 512},
		{"zero", "0", 0},
		{"tb suffix", "1tb", 1 << 40},
		{"pb suffix", "1pb", 1 << 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sizeparse.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseWithoutQualifierMatchesParseInt(t *testing.T) {
	// For all Size values N without a qualifier, parse_size(N) == parse_int(N).
	for _, n := range []string{"0", "1", "42", "2147483648"} {
		got, err := sizeparse.Parse(n)
		require.NoError(t, err)
		want, err := strconv.ParseInt(n, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "abc", "2gbx", "-5", "5 kb", "kb5"} {
		_, err := sizeparse.Parse(bad)
		require.Error(t, err)
		var fe sizeparse.FormatError
		assert.ErrorAs(t, err, &fe)
	}
}
