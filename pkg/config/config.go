// config.go - the resolved, immutable parser output.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config defines [Config], the fully-resolved, read-only object
// produced by phase 5 of the parser pipeline (spec.md §3 "Config"), and
// the [Builder] that phase 5 uses to assemble one.
package config

import (
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
)

// Variant holds a resolved option value. Only the field matching the
// option's [optmeta.OptionType] is meaningful.
type Variant struct {
	Bool  bool
	Int   int64
	Float float64
	Str   string
	List  []string
	Hash  map[string]string
}

// ResolvedOption is the per-external-index output of resolution: either
// a committed [Variant] (Set true) or an explicitly absent value (Set
// false: a negated non-Boolean option, an option with no value and no
// default that the command does not require, or an option whose
// dependency did not resolve).
type ResolvedOption struct {
	Negate bool
	Reset  bool
	Source parseopt.Source
	Set    bool
	Value  Variant
}

// OptionState is the full resolved state of one option across every
// external index (a single entry, at index 0, for non-group options).
type OptionState struct {
	Valid  bool
	Values []ResolvedOption
}

// GroupState is the compacted index mapping for one option group,
// carried into the output so callers can translate a dense external
// index back to the raw index the user typed (e.g. `pg3-path`).
type GroupState struct {
	IndexTotal    int
	ExternalToRaw []int
}

// Config is the fully-resolved, validated parser output (spec.md §3).
// It is built once by [Builder.Build] and never mutated afterward.
type Config struct {
	CommandID     optmeta.CommandID
	CommandRole   string
	CommandParams []string
	HelpRequested bool
	ExePath       string

	options map[optmeta.OptionID]*OptionState
	groups  map[optmeta.GroupID]GroupState
}

// Option returns the resolved state of id, or false if id was never
// visited by the resolver (should not happen for any known option).
func (c *Config) Option(id optmeta.OptionID) (OptionState, bool) {
	st, ok := c.options[id]
	if !ok {
		return OptionState{}, false
	}
	return *st, true
}

// At returns the resolved value at (id, externalIndex), or false if the
// option is not valid for the command or the index is out of range.
func (c *Config) At(id optmeta.OptionID, externalIndex int) (ResolvedOption, bool) {
	st, ok := c.options[id]
	if !ok || !st.Valid || externalIndex < 0 || externalIndex >= len(st.Values) {
		return ResolvedOption{}, false
	}
	return st.Values[externalIndex], true
}

// Group returns the compacted index mapping for group, or false if no
// member of the group was ever found.
func (c *Config) Group(group optmeta.GroupID) (GroupState, bool) {
	gs, ok := c.groups[group]
	return gs, ok
}

// Builder assembles a [Config] incrementally during phase 5.
type Builder struct {
	cfg *Config
}

// NewBuilder returns an empty [*Builder].
func NewBuilder() *Builder {
	return &Builder{cfg: &Config{
		options: make(map[optmeta.OptionID]*OptionState),
		groups:  make(map[optmeta.GroupID]GroupState),
	}}
}

// SetCommand records the command-level fields (spec.md §3 "Config").
func (b *Builder) SetCommand(id optmeta.CommandID, role string, params []string, helpRequested bool, exePath string) {
	b.cfg.CommandID = id
	b.cfg.CommandRole = role
	b.cfg.CommandParams = params
	b.cfg.HelpRequested = helpRequested
	b.cfg.ExePath = exePath
}

// SetOption records the full resolved state of one option.
func (b *Builder) SetOption(id optmeta.OptionID, state OptionState) {
	b.cfg.options[id] = &state
}

// SetGroup records the compacted index mapping for one group.
func (b *Builder) SetGroup(id optmeta.GroupID, state GroupState) {
	b.cfg.groups[id] = state
}

// Build finalizes and returns the assembled [*Config]. The builder must
// not be reused afterward.
func (b *Builder) Build() *Config {
	return b.cfg
}
