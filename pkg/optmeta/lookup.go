// lookup.go - name resolution (direct names, group templates, aliases).
// SPDX-License-Identifier: GPL-3.0-or-later

package optmeta

import "strconv"

// ResolvedName is the result of resolving a bare option name (with any
// `no-`/`reset-` prefix already stripped by the caller, see [SplitModifier])
// to a concrete option and raw index.
type ResolvedName struct {
	ID         OptionID
	RawIndex   int // 0 for non-group options, 1-origin for group members
	Deprecated bool
}

// SplitModifier strips a leading "no-" or "reset-" prefix from name,
// returning the remainder plus which modifier (if any) was present.
// Only one of negate/reset is ever true.
func SplitModifier(name string) (bare string, negate, reset bool) {
	const (
		negatePrefix = "no-"
		resetPrefix  = "reset-"
	)
	switch {
	case len(name) > len(negatePrefix) && name[:len(negatePrefix)] == negatePrefix:
		return name[len(negatePrefix):], true, false
	case len(name) > len(resetPrefix) && name[:len(resetPrefix)] == resetPrefix:
		return name[len(resetPrefix):], false, true
	default:
		return name, false, false
	}
}

// ResolveBareName resolves a bare option name (no `no-`/`reset-` prefix)
// to its option and raw index, trying direct names, deprecated aliases,
// and group templates in that order.
func ResolveBareName(name string) (ResolvedName, bool) {
	if id, ok := nonGroupNames[name]; ok {
		return ResolvedName{ID: id, RawIndex: 0}, true
	}
	if alias, ok := deprecatedByName[name]; ok {
		return ResolvedName{ID: alias.CanonicalID, RawIndex: alias.RawIndex, Deprecated: true}, true
	}
	for _, gt := range groupTemplates {
		if idx, ok := matchGroupTemplate(gt, name); ok {
			return ResolvedName{ID: gt.ID, RawIndex: idx}, true
		}
	}
	return ResolvedName{}, false
}

func matchGroupTemplate(gt groupTemplate, name string) (int, bool) {
	if len(name) <= len(gt.Prefix)+len(gt.Suffix) {
		return 0, false
	}
	if name[:len(gt.Prefix)] != gt.Prefix {
		return 0, false
	}
	if name[len(name)-len(gt.Suffix):] != gt.Suffix {
		return 0, false
	}
	digits := name[len(gt.Prefix) : len(name)-len(gt.Suffix)]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil || idx <= 0 {
		return 0, false
	}
	return idx, true
}

// GroupName returns the external, index-free display name of a grouped
// option's metadata (e.g. "pg-path"), used in error messages.
func GroupName(meta *OptionMeta) string {
	return meta.Name
}

// CLIName renders the literal flag name (without prefix) that would
// appear on argv for (meta, rawIndex), e.g. (pg-path, 3) -> "pg3-path".
func CLIName(meta *OptionMeta, rawIndex int) string {
	if meta.GroupID == NoGroup {
		return meta.Name
	}
	for _, gt := range groupTemplates {
		if gt.ID == meta.ID {
			return gt.Prefix + strconv.Itoa(rawIndex) + gt.Suffix
		}
	}
	return meta.Name
}
