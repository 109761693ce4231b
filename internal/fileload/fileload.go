// fileload.go - phase 3, configuration file loader.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fileload implements phase 3 of the parser pipeline: decide
// which configuration file(s) to read based on phase-1 state, parse
// them through the INI reader, and populate every option still unset
// from the sections that apply to the resolved stanza/command
// (spec.md §4.4).
package fileload

import (
	"fmt"

	"github.com/archivewright/pgbackrest/internal/logx"
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/internal/storage"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
	ini "gopkg.in/ini.v1"
)

const legacyConfigPath = "/etc/pgbackrest.conf"

// Load decides which files to read, reads and validates them through
// the INI reader, and merges every section that applies to cmd (and
// the stanza already staged in table, if any) into table, skipping
// anything already set by P1/P2.
func Load(table *parseopt.Table, store storage.Storage, cmd optmeta.CommandID, logger logx.Logger) error {
	if logger == nil {
		logger = logx.Discard
	}

	buf, err := assembleSource(table, store)
	if err != nil {
		return err
	}
	if buf == "" {
		return nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, []byte(buf))
	if err != nil {
		return err
	}

	stanza := stanzaName(table)
	cmdName := optmeta.CommandName(cmd)
	for _, sec := range searchSections(stanza, cmdName) {
		if err := mergeSection(file, sec, table, cmd, logger); err != nil {
			return err
		}
	}
	return nil
}

func stanzaName(table *parseopt.Table) string {
	pv, ok := table.Peek(optmeta.StanzaOption, 0)
	if !ok || !pv.Found || len(pv.Values) == 0 {
		return ""
	}
	return pv.Values[0]
}

// sectionRef names one candidate section and whether it is
// "command-specific" (spec.md §4.4 "indexed sections 0 and 2").
type sectionRef struct {
	name            string
	commandSpecific bool
	global          bool
}

func searchSections(stanza, cmdName string) []sectionRef {
	var out []sectionRef
	if stanza != "" {
		out = append(out,
			sectionRef{name: stanza + ":" + cmdName, commandSpecific: true},
			sectionRef{name: stanza},
		)
	}
	out = append(out,
		sectionRef{name: "global:" + cmdName, commandSpecific: true, global: true},
		sectionRef{name: "global", global: true},
	)
	return out
}

// assembleSource implements the file-selection decision table
// (spec.md §4.4 "Preliminaries" and "Main file step"/"Include step").
func assembleSource(table *parseopt.Table, store storage.Storage) (string, error) {
	configMeta := optmeta.Lookup(optmeta.ConfigOption)
	includeMeta := optmeta.Lookup(optmeta.ConfigIncludePathOption)

	cPV, _ := table.Peek(optmeta.ConfigOption, 0)
	cpPV, _ := table.Peek(optmeta.ConfigPathOption, 0)
	ciPV, _ := table.Peek(optmeta.ConfigIncludePathOption, 0)

	configRequired := found(cPV) && cPV.Source == parseopt.SourceParam
	configPathRequired := found(cpPV) && cpPV.Source == parseopt.SourceParam
	configIncludeRequired := found(ciPV) && ciPV.Source == parseopt.SourceParam

	loadConfig := true
	if found(cPV) && cPV.Negate {
		loadConfig = false
		configRequired = false
	}

	defaultConfigPath := configMeta.DefaultValue
	defaultIncludePath := includeMeta.DefaultValue
	if configPathRequired {
		base := cpPV.Values[0]
		defaultConfigPath = base + "/pgbackrest.conf"
		defaultIncludePath = base + "/conf.d"
	}

	loadConfigInclude := true
	if configRequired && !(configPathRequired || configIncludeRequired) {
		loadConfigInclude = false
	}
	if !loadConfig {
		loadConfigInclude = false
	}

	var mainContent string
	if loadConfig {
		path := defaultConfigPath
		if configRequired {
			path = cPV.Values[0]
		}
		ignoreMissing := !configRequired

		data, ok, err := store.ReadFile(path, ignoreMissing)
		if err != nil {
			return "", perror.OptionInvalidError{Message: fmt.Sprintf(
				"unable to open '%s' for read: %s", path, err)}
		}
		if !ok && !configRequired && path == configMeta.DefaultValue {
			data, ok, err = store.ReadFile(legacyConfigPath, true)
			if err != nil {
				return "", perror.OptionInvalidError{Message: fmt.Sprintf(
					"unable to open '%s' for read: %s", legacyConfigPath, err)}
			}
		}
		if ok {
			mainContent = string(data)
		}
	}

	if !loadConfigInclude {
		return mainContent, nil
	}

	if mainContent != "" {
		if _, err := ini.Load([]byte(mainContent)); err != nil {
			return "", err
		}
	}

	includePath := defaultIncludePath
	if configIncludeRequired {
		includePath = ciPV.Values[0]
	}
	entries, ok, err := store.ListConfFiles(includePath, !configIncludeRequired)
	if err != nil {
		return "", perror.OptionInvalidError{Message: fmt.Sprintf(
			"unable to list '%s': %s", includePath, err)}
	}
	if !ok {
		return mainContent, nil
	}

	buf := mainContent
	for _, entry := range entries {
		data, _, err := store.ReadFile(entry, false)
		if err != nil {
			return "", perror.OptionInvalidError{Message: fmt.Sprintf(
				"unable to open '%s' for read: %s", entry, err)}
		}
		if _, err := ini.Load(data); err != nil {
			return "", err
		}
		// The separator is inserted unconditionally before each part,
		// defending against a fragment lacking a trailing newline
		// (spec.md §9 Open Question (a)).
		buf += "\n" + string(data)
	}
	return buf, nil
}

func found(pv *parseopt.Value) bool {
	return pv != nil && pv.Found
}

func mergeSection(file *ini.File, ref sectionRef, table *parseopt.Table, cmd optmeta.CommandID, logger logx.Logger) error {
	sec, err := file.GetSection(ref.name)
	if err != nil {
		return nil // section absent: nothing to merge
	}

	seenKeyFor := make(map[optmeta.OptionID]map[int]string)

	for _, key := range sec.Keys() {
		keyName := key.Name()
		bare, negate, reset := optmeta.SplitModifier(keyName)
		if negate || reset {
			logger.Warnf("section '[%s]', key '%s' names a negate/reset form and is ignored", ref.name, keyName)
			continue
		}
		resolved, ok := optmeta.ResolveBareName(bare)
		if !ok {
			logger.Warnf("section '[%s]', key '%s' does not match a known option", ref.name, keyName)
			continue
		}
		meta := optmeta.Lookup(resolved.ID)
		perror.Assertf(meta != nil, "resolved option id %d missing from table", resolved.ID)

		if meta.Section == optmeta.CommandLineSection {
			logger.Warnf("section '[%s]', key '%s' is a command-line only option and is ignored", ref.name, keyName)
			continue
		}
		if ref.commandSpecific && !meta.ValidForCommand(cmd) {
			logger.Warnf("section '[%s]', key '%s' is not valid for command '%s'", ref.name, keyName, optmeta.CommandName(cmd))
			continue
		}
		if ref.global && meta.Section == optmeta.StanzaSection {
			logger.Warnf("section '[%s]', key '%s' is a stanza-only option and is ignored", ref.name, keyName)
			continue
		}

		byIndex := seenKeyFor[resolved.ID]
		if byIndex == nil {
			byIndex = make(map[int]string)
			seenKeyFor[resolved.ID] = byIndex
		}
		if prior, dup := byIndex[resolved.RawIndex]; dup && prior != keyName {
			return perror.OptionInvalidError{Message: fmt.Sprintf(
				"configuration file contains duplicate options ('%s', '%s') in section '[%s]'", prior, keyName, ref.name)}
		}
		byIndex[resolved.RawIndex] = keyName

		if pv, ok := table.Peek(resolved.ID, resolved.RawIndex); ok && pv.Found {
			continue
		}

		if err := mergeKey(key, meta, resolved, ref.name, table); err != nil {
			return err
		}
	}
	return nil
}

func mergeKey(key *ini.Key, meta *optmeta.OptionMeta, resolved optmeta.ResolvedName, sectionName string, table *parseopt.Table) error {
	pv := table.Get(resolved.ID, resolved.RawIndex)
	pv.Source = parseopt.SourceConfig

	if meta.Multi {
		shadows := key.ValueWithShadows()
		if len(shadows) == 0 {
			shadows = []string{key.String()}
		}
		pv.Found = true
		pv.Values = append([]string(nil), shadows...)
		return nil
	}

	if shadows := key.ValueWithShadows(); len(shadows) > 1 {
		return perror.OptionInvalidError{Message: fmt.Sprintf(
			"option '%s' cannot be set multiple times", key.Name())}
	}

	value := key.String()
	if value == "" {
		return perror.OptionInvalidValueError{Message: fmt.Sprintf(
			"section '%s', key '%s' must have a value", sectionName, key.Name())}
	}
	if meta.Type == optmeta.Boolean {
		switch value {
		case "y":
			pv.Found = true
		case "n":
			pv.Found = true
			pv.Negate = true
		default:
			return perror.OptionInvalidValueError{Message: fmt.Sprintf(
				"boolean option '%s' must be 'y' or 'n'", key.Name())}
		}
		return nil
	}
	pv.Found = true
	pv.Values = []string{value}
	return nil
}
