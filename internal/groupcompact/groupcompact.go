// groupcompact.go - phase 4, group index compaction.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package groupcompact implements phase 4 of the parser pipeline: for
// each option group, discover which raw indexes actually have a value
// and assign them a dense external ordering 0..k-1 (spec.md §4.5).
package groupcompact

import (
	"fmt"
	"sort"

	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
)

// Group is the compacted index mapping for one option group.
type Group struct {
	// IndexTotal is the number of distinct raw indexes found (k).
	IndexTotal int

	// ExternalToRaw maps a dense external index (0..k-1) to the
	// original raw index that produced it, in ascending raw order.
	ExternalToRaw []int
}

// Result is the output of [Compact]: one [Group] per [optmeta.GroupID]
// that has at least one populated member.
type Result map[optmeta.GroupID]Group

// Compact walks every found option value in table, checks the
// command-line-set-but-invalid-for-command error, and builds the dense
// external index mapping, from options valid for cmd, for every group
// that has at least one found raw index.
func Compact(table *parseopt.Table, cmd optmeta.CommandID) (Result, error) {
	rawIndexes := make(map[optmeta.GroupID]map[int]bool)

	for id, meta := range optmeta.All() {
		for _, idx := range table.Indexes(id) {
			pv, ok := table.Peek(id, idx)
			if !ok || !pv.Found {
				continue
			}
			if !meta.ValidForCommand(cmd) {
				if pv.Source == parseopt.SourceParam {
					return nil, perror.OptionInvalidError{Message: fmt.Sprintf(
						"option '%s' not valid for command '%s'", optmeta.CLIName(meta, idx), optmeta.CommandName(cmd))}
				}
				continue // env/file-sourced, already warned earlier
			}
			if meta.GroupID == optmeta.NoGroup {
				continue
			}
			byIdx := rawIndexes[meta.GroupID]
			if byIdx == nil {
				byIdx = make(map[int]bool)
				rawIndexes[meta.GroupID] = byIdx
			}
			byIdx[idx] = true
		}
	}

	result := make(Result, len(rawIndexes))
	for group, byIdx := range rawIndexes {
		raws := make([]int, 0, len(byIdx))
		for idx := range byIdx {
			raws = append(raws, idx)
		}
		sort.Ints(raws)
		result[group] = Group{IndexTotal: len(raws), ExternalToRaw: raws}
	}
	return result, nil
}

// ExternalIndex returns the external index assigned to rawIndex within
// g, or -1 if rawIndex was never found.
func (g Group) ExternalIndex(rawIndex int) int {
	for ext, raw := range g.ExternalToRaw {
		if raw == rawIndex {
			return ext
		}
	}
	return -1
}
