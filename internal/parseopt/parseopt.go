// parseopt.go - P1-P3 staging data model.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package parseopt holds the mutable staging tables populated by the
// arg scanner (P1), env scanner (P2) and file loader (P3) before the
// resolver (P5) turns them into an immutable [config.Config].
package parseopt

import "github.com/archivewright/pgbackrest/pkg/optmeta"

// Source records where a [Value] came from, used both to enforce
// precedence (spec.md §8 "P2 never overwrites a value found in P1") and
// to stamp the final resolved value (spec.md §3).
type Source int

// These are the allowed [Source] values.
const (
	SourceParam Source = iota
	SourceConfig
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceParam:
		return "param"
	case SourceConfig:
		return "config"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Value is a staging record for one (option id, raw index) pair,
// spec.md §3 "ParseOptionValue".
type Value struct {
	Found  bool
	Negate bool
	Reset  bool
	Source Source
	Values []string
}

// Table is the staging map populated across P1-P3, keyed by option id and
// then by raw index (spec.md §3 "ParseOptionTable"). Gaps are permitted
// until P4 compacts them.
type Table struct {
	entries map[optmeta.OptionID]map[int]*Value
}

// NewTable returns an empty, ready-to-use [*Table].
func NewTable() *Table {
	return &Table{entries: make(map[optmeta.OptionID]map[int]*Value)}
}

// Get returns the [*Value] at (id, index), creating it (as a zero value)
// on first access so callers can mutate it in place.
func (t *Table) Get(id optmeta.OptionID, index int) *Value {
	byIndex, ok := t.entries[id]
	if !ok {
		byIndex = make(map[int]*Value)
		t.entries[id] = byIndex
	}
	v, ok := byIndex[index]
	if !ok {
		v = &Value{}
		byIndex[index] = v
	}
	return v
}

// Peek is like [*Table.Get] but never creates an entry; the second
// return value is false when nothing has been recorded at (id, index).
func (t *Table) Peek(id optmeta.OptionID, index int) (*Value, bool) {
	byIndex, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	v, ok := byIndex[index]
	return v, ok
}

// Indexes returns the raw indexes recorded for id, in ascending order.
func (t *Table) Indexes(id optmeta.OptionID) []int {
	byIndex, ok := t.entries[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		out = append(out, idx)
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
