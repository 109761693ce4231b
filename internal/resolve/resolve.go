// resolve.go - phase 5, dependency resolution, defaulting and type
// coercion.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resolve implements phase 5 of the parser pipeline: walk every
// option in dependency order, decide whether its depend (if any) is
// satisfied, commit a type-coerced value or a default, and raise the
// required-option error as soon as a required option is reached with
// no value and no default (spec.md §4.6).
package resolve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/archivewright/pgbackrest/internal/groupcompact"
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/config"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
	"github.com/archivewright/pgbackrest/pkg/sizeparse"
)

// scalar is the per-(option, external index) resolved value reduced to
// the plain string form used for dependency comparisons (Boolean
// becomes "0"/"1", per spec.md §4.6 step 3).
type scalar struct {
	value string
	found bool
}

// Resolve walks every option in topological dependency order and
// commits its resolved state into b. cmd is the already-dispatched
// command; helpRequested suppresses required-option errors (spec.md
// §4.6 step 5).
func Resolve(b *config.Builder, table *parseopt.Table, groups groupcompact.Result, cmd optmeta.CommandID, helpRequested bool) error {
	order := resolveOrder()
	resolved := make(map[optmeta.OptionID]map[int]scalar, len(order))

	for _, id := range order {
		meta := optmeta.Lookup(id)
		perror.Assertf(meta != nil, "resolve order named unknown option id %d", id)

		indexTotal, rawOf := indexPlan(meta, groups)
		values := make([]config.ResolvedOption, 0, indexTotal)
		byIndex := make(map[int]scalar, indexTotal)

		for i := 0; i < indexTotal; i++ {
			raw := rawOf(i)
			pv, ok := table.Peek(id, raw)
			if !ok {
				pv = &parseopt.Value{}
			}

			entry, sc, err := resolveOne(meta, pv, raw, i, resolved, cmd, helpRequested)
			if err != nil {
				return err
			}
			values = append(values, entry)
			byIndex[i] = sc
		}

		resolved[id] = byIndex
		b.SetOption(id, config.OptionState{Valid: meta.ValidForCommand(cmd), Values: values})
	}

	for id, g := range groups {
		b.SetGroup(id, config.GroupState{IndexTotal: g.IndexTotal, ExternalToRaw: g.ExternalToRaw})
	}
	return nil
}

// resolveOne implements spec.md §4.6 steps 1-6 for a single (option,
// external index) pair.
func resolveOne(
	meta *optmeta.OptionMeta,
	pv *parseopt.Value,
	raw, externalIndex int,
	resolved map[optmeta.OptionID]map[int]scalar,
	cmd optmeta.CommandID,
	helpRequested bool,
) (config.ResolvedOption, scalar, error) {
	optionSet := pv.Found && (meta.Type == optmeta.Boolean || !pv.Negate) && !pv.Reset
	entry := config.ResolvedOption{Negate: pv.Negate, Reset: pv.Reset, Source: pv.Source}

	dependResolved := true
	if meta.Depend != nil {
		dependResolved = checkDepend(meta, pv, raw, externalIndex, optionSet, resolved)
		if dependErr := dependError(meta, pv, raw, optionSet, dependResolved, resolved); dependErr != nil {
			return config.ResolvedOption{}, scalar{}, dependErr
		}
	}

	switch {
	case dependResolved && optionSet:
		variant, err := coerceFound(meta, pv, raw)
		if err != nil {
			return config.ResolvedOption{}, scalar{}, err
		}
		entry.Set = true
		entry.Value = variant
		return entry, scalar{value: scalarOf(meta, variant), found: true}, nil

	case dependResolved && !optionSet:
		switch {
		case pv.Negate:
			entry.Source = parseopt.SourceParam
			return entry, scalar{found: false}, nil
		case meta.HasDefault:
			variant, err := coerceDefault(meta, raw)
			if err != nil {
				return config.ResolvedOption{}, scalar{}, err
			}
			entry.Source = parseopt.SourceDefault
			entry.Set = true
			entry.Value = variant
			return entry, scalar{value: scalarOf(meta, variant), found: true}, nil
		case meta.RequiredForCommand(cmd) && !helpRequested:
			hint := ""
			if meta.Section == optmeta.StanzaSection {
				hint = "\nHINT: does this stanza exist?"
			}
			return config.ResolvedOption{}, scalar{}, perror.OptionRequiredError{Message: fmt.Sprintf(
				"%s command requires option: %s%s", optmeta.CommandName(cmd), optmeta.CLIName(meta, raw), hint)}
		default:
			return entry, scalar{found: false}, nil
		}

	default: // dependency unresolved and not a Param error case: leave null
		return entry, scalar{found: false}, nil
	}
}

// checkDepend reports whether meta's depend is satisfied, per spec.md
// §4.6 step 3.
func checkDepend(meta *optmeta.OptionMeta, pv *parseopt.Value, raw, externalIndex int, optionSet bool, resolved map[optmeta.OptionID]map[int]scalar) bool {
	sc := dependValue(resolved, meta.Depend.Option, externalIndex)
	if !sc.found {
		return false
	}
	if len(meta.Depend.AllowList) == 0 {
		return true
	}
	for _, allowed := range meta.Depend.AllowList {
		if allowed == sc.value {
			return true
		}
	}
	return false
}

// dependError returns the Param-sourced dependency-failure error for
// meta, or nil if no error should be raised (either the dependency
// resolved, or the failure is not attributable to an explicit Param
// value).
func dependError(meta *optmeta.OptionMeta, pv *parseopt.Value, raw int, optionSet, dependResolved bool, resolved map[optmeta.OptionID]map[int]scalar) error {
	if dependResolved || !optionSet || pv.Source != parseopt.SourceParam {
		return nil
	}
	name := optmeta.CLIName(meta, raw)
	target := optmeta.Lookup(meta.Depend.Option)

	if len(meta.Depend.AllowList) == 0 {
		return perror.OptionInvalidError{Message: fmt.Sprintf(
			"option '%s' not valid without option '%s'", name, target.Name)}
	}
	return perror.OptionInvalidError{Message: fmt.Sprintf(
		"option '%s' not valid without option '%s'%s", name, dependOptionName(target, meta.Depend.AllowList), dependValueSuffix(target, meta.Depend.AllowList))}
}

// dependOptionName and dependValueSuffix jointly reproduce the real
// pgBackRest wording algorithm (original_source/src/config/parse.c,
// the option-resolution loop): the declared allow-list is walked once;
// for a Boolean depend target, an allowed value of "0" renames the
// target to "no-<name>" and contributes nothing to the value list; any
// other (non-Boolean) allowed value is quoted and appended to the
// value list instead. The two are mutually exclusive per entry, which
// is why a Boolean depend renders as either a bare "no-<name>" or a
// bare "<name>", never with a value suffix.
func dependOptionName(target *optmeta.OptionMeta, allowList []string) string {
	name := target.Name
	if target.Type != optmeta.Boolean {
		return name
	}
	for _, v := range allowList {
		if v == "0" {
			return "no-" + target.Name
		}
	}
	return name
}

func dependValueSuffix(target *optmeta.OptionMeta, allowList []string) string {
	if target.Type == optmeta.Boolean {
		return ""
	}
	quoted := make([]string, 0, len(allowList))
	for _, v := range allowList {
		quoted = append(quoted, fmt.Sprintf("'%s'", v))
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return " = " + quoted[0]
	default:
		return " in (" + strings.Join(quoted, ", ") + ")"
	}
}

// dependValue looks up the resolved scalar of target at externalIndex,
// falling back to index 0 (the common case: almost every depend target
// is a non-group, single-valued option).
func dependValue(resolved map[optmeta.OptionID]map[int]scalar, target optmeta.OptionID, externalIndex int) scalar {
	byIndex := resolved[target]
	if byIndex == nil {
		return scalar{}
	}
	if sc, ok := byIndex[externalIndex]; ok {
		return sc
	}
	if sc, ok := byIndex[0]; ok {
		return sc
	}
	return scalar{}
}

func scalarOf(meta *optmeta.OptionMeta, v config.Variant) string {
	switch meta.Type {
	case optmeta.Boolean:
		if v.Bool {
			return "1"
		}
		return "0"
	case optmeta.Integer, optmeta.Size:
		return strconv.FormatInt(v.Int, 10)
	case optmeta.Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Str
	}
}

func indexPlan(meta *optmeta.OptionMeta, groups groupcompact.Result) (total int, rawOf func(int) int) {
	if meta.GroupID == optmeta.NoGroup {
		return 1, func(int) int { return 0 }
	}
	g, ok := groups[meta.GroupID]
	if !ok {
		return 0, func(int) int { return 0 }
	}
	return g.IndexTotal, func(i int) int { return g.ExternalToRaw[i] }
}

// resolveOrder topologically sorts the dependency graph extracted from
// [optmeta.All], ties broken by id ascending (spec.md §4.6). It holds
// no state across calls: every option is static data, so recomputing
// this on each parse keeps the resolver itself free of module-level
// shared state (spec.md §5).
func resolveOrder() []optmeta.OptionID {
	all := optmeta.All()
	ids := make([]optmeta.OptionID, 0, len(all))
	inDegree := make(map[optmeta.OptionID]int, len(all))
	dependents := make(map[optmeta.OptionID][]optmeta.OptionID)

	for id, meta := range all {
		ids = append(ids, id)
		if meta.Depend != nil {
			inDegree[id] = 1
			dependents[meta.Depend.Option] = append(dependents[meta.Depend.Option], id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ready := make([]optmeta.OptionID, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]optmeta.OptionID, 0, len(ids))
	for len(order) < len(ids) {
		perror.Assertf(len(ready) > 0, "dependency cycle detected while computing resolve order")
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, dep := range dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	return order
}

// coerceFound performs the type-directed coercion of step 4 for an
// option whose value came from found input (CLI/env/file), as opposed
// to a default.
func coerceFound(meta *optmeta.OptionMeta, pv *parseopt.Value, raw int) (config.Variant, error) {
	if meta.Type == optmeta.Boolean {
		return config.Variant{Bool: !pv.Negate}, nil
	}
	return coerceRaw(meta, pv.Values, raw)
}

// coerceDefault coerces an option's declared default value through the
// same type rules as a found value (step 5).
func coerceDefault(meta *optmeta.OptionMeta, raw int) (config.Variant, error) {
	if meta.Type == optmeta.Boolean {
		return config.Variant{Bool: meta.DefaultValue == "1"}, nil
	}
	return coerceRaw(meta, []string{meta.DefaultValue}, raw)
}

func coerceRaw(meta *optmeta.OptionMeta, raws []string, rawIndex int) (config.Variant, error) {
	name := optmeta.CLIName(meta, rawIndex)

	switch meta.Type {
	case optmeta.Hash:
		h := make(map[string]string, len(raws))
		for _, r := range raws {
			k, v, ok := strings.Cut(r, "=")
			if !ok {
				return config.Variant{}, perror.OptionInvalidError{Message: fmt.Sprintf(
					"key/value '%s' not valid for '%s' option", r, name)}
			}
			h[k] = v
		}
		return config.Variant{Hash: h}, nil

	case optmeta.List:
		return config.Variant{List: append([]string(nil), raws...)}, nil

	case optmeta.Integer:
		raw := raws[0]
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return config.Variant{}, perror.OptionInvalidValueError{Message: fmt.Sprintf(
				"'%s' is not valid for '%s' option", raw, name)}
		}
		if err := checkRange(meta, float64(n), raw, name); err != nil {
			return config.Variant{}, err
		}
		return config.Variant{Int: n}, nil

	case optmeta.Float:
		raw := raws[0]
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return config.Variant{}, perror.OptionInvalidValueError{Message: fmt.Sprintf(
				"'%s' is not valid for '%s' option", raw, name)}
		}
		if err := checkRange(meta, f, raw, name); err != nil {
			return config.Variant{}, err
		}
		return config.Variant{Float: f}, nil

	case optmeta.Size:
		raw := raws[0]
		n, err := sizeparse.Parse(raw)
		if err != nil {
			return config.Variant{}, perror.OptionInvalidValueError{Message: fmt.Sprintf(
				"'%s' is not valid for '%s' option", raw, name)}
		}
		if err := checkRange(meta, float64(n), raw, name); err != nil {
			return config.Variant{}, err
		}
		return config.Variant{Int: n}, nil

	case optmeta.Path:
		raw := raws[0]
		p, err := validatePath(raw, name)
		if err != nil {
			return config.Variant{}, err
		}
		if err := checkAllowList(meta, p, name); err != nil {
			return config.Variant{}, err
		}
		return config.Variant{Str: p}, nil

	case optmeta.String:
		raw := raws[0]
		if err := checkAllowList(meta, raw, name); err != nil {
			return config.Variant{}, err
		}
		return config.Variant{Str: raw}, nil
	}

	perror.Assertf(false, "unhandled option type %d for option '%s'", meta.Type, name)
	return config.Variant{}, nil
}

func checkRange(meta *optmeta.OptionMeta, v float64, raw, name string) error {
	if meta.AllowRange == nil {
		return nil
	}
	if v < meta.AllowRange.Min || v > meta.AllowRange.Max {
		return perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"'%s' is out of range for '%s' option", raw, name)}
	}
	return nil
}

func validatePath(raw, name string) (string, error) {
	if len(raw) == 0 {
		return "", perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"path option '%s' must be >= 1 character", name)}
	}
	if raw[0] != '/' {
		return "", perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"path option '%s' must begin with /", name)}
	}
	if strings.Contains(raw, "//") {
		return "", perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"path option '%s' cannot contain //", name)}
	}
	if raw != "/" && strings.HasSuffix(raw, "/") {
		raw = strings.TrimSuffix(raw, "/")
	}
	return raw, nil
}

func checkAllowList(meta *optmeta.OptionMeta, value, name string) error {
	if len(meta.AllowList) == 0 {
		return nil
	}
	for _, v := range meta.AllowList {
		if v == value {
			return nil
		}
	}
	return perror.OptionInvalidValueError{Message: fmt.Sprintf(
		"'%s' is not allowed for '%s' option", value, name)}
}
