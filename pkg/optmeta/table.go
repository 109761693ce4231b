// table.go - the static option metadata table.
// SPDX-License-Identifier: GPL-3.0-or-later

package optmeta

// These are the dense option IDs. Group members (Pg*/Repo*) share a
// single ID across every raw index: "pg1-path" and "pg2-path" both
// resolve to PgPathOption, differentiated by index in the staging table.
const (
	StanzaOption OptionID = iota
	ConfigOption
	ConfigPathOption
	ConfigIncludePathOption
	LogLevelConsoleOption
	LogLevelFileOption
	ProcessMaxOption
	CompressTypeOption
	CompressLevelOption
	BufferSizeOption
	ArchiveAsyncOption
	SpoolPathOption
	BackupStandbyOption
	RepoRetentionFullOption
	OnlineOption
	RepoCipherPassOption
	PgPathOption
	PgPortOption
	RepoPathOption
	RepoTypeOption
	RecoveryOptionOption
	DbIncludeOption
	optionTotal
)

// Total is the number of distinct options known to the parser.
const Total = int(optionTotal)

var table = map[OptionID]*OptionMeta{
	StanzaOption: {
		ID: StanzaOption, Name: "stanza", Type: String, Section: StanzaSection,
		validCommands: allCommands(InfoCommand),
		requiredCommands: commandsOf(BackupCommand, RestoreCommand, ArchivePushCommand,
			ArchiveGetCommand, CheckCommand, StanzaCreateCommand),
	},
	ConfigOption: {
		ID: ConfigOption, Name: "config", Type: Path, Section: GlobalSection,
		DefaultValue: "/etc/pgbackrest/pgbackrest.conf", HasDefault: true,
		validCommands: allCommands(),
	},
	ConfigPathOption: {
		ID: ConfigPathOption, Name: "config-path", Type: Path, Section: GlobalSection,
		validCommands: allCommands(),
	},
	ConfigIncludePathOption: {
		ID: ConfigIncludePathOption, Name: "config-include-path", Type: Path, Section: GlobalSection,
		DefaultValue: "/etc/pgbackrest/conf.d", HasDefault: true,
		validCommands: allCommands(),
	},
	LogLevelConsoleOption: {
		ID: LogLevelConsoleOption, Name: "log-level-console", Type: String, Section: GlobalSection,
		DefaultValue: "warn", HasDefault: true,
		AllowList:     []string{"off", "error", "warn", "info", "debug", "trace"},
		validCommands: allCommands(),
	},
	LogLevelFileOption: {
		ID: LogLevelFileOption, Name: "log-level-file", Type: String, Section: GlobalSection,
		DefaultValue: "info", HasDefault: true,
		AllowList:     []string{"off", "error", "warn", "info", "debug", "trace"},
		validCommands: allCommands(),
	},
	ProcessMaxOption: {
		ID: ProcessMaxOption, Name: "process-max", Type: Integer, Section: GlobalSection,
		DefaultValue: "1", HasDefault: true,
		AllowRange: &AllowRange{Min: 1, Max: 96},
		validCommands: commandsOf(BackupCommand, RestoreCommand, ArchivePushCommand,
			ArchiveGetCommand, CheckCommand),
	},
	CompressTypeOption: {
		ID: CompressTypeOption, Name: "compress-type", Type: String, Section: GlobalSection,
		DefaultValue: "gz", HasDefault: true,
		AllowList:     []string{"none", "gz", "lz4", "zst", "bz2"},
		validCommands: commandsOf(BackupCommand, ArchivePushCommand),
	},
	CompressLevelOption: {
		ID: CompressLevelOption, Name: "compress-level", Type: Integer, Section: GlobalSection,
		DefaultValue: "6", HasDefault: true,
		AllowRange:    &AllowRange{Min: 0, Max: 9},
		validCommands: commandsOf(BackupCommand, ArchivePushCommand),
	},
	BufferSizeOption: {
		ID: BufferSizeOption, Name: "buffer-size", Type: Size, Section: GlobalSection,
		DefaultValue: "1048576", HasDefault: true,
		AllowRange:    &AllowRange{Min: 16384, Max: 4294967296},
		validCommands: commandsOf(BackupCommand, RestoreCommand),
	},
	ArchiveAsyncOption: {
		ID: ArchiveAsyncOption, Name: "archive-async", Type: Boolean, Section: GlobalSection,
		validCommands: commandsOf(ArchivePushCommand, ArchiveGetCommand),
	},
	SpoolPathOption: {
		ID: SpoolPathOption, Name: "spool-path", Type: Path, Section: GlobalSection,
		DefaultValue: "/var/spool/pgbackrest", HasDefault: true,
		Depend:        &Depend{Option: ArchiveAsyncOption, AllowList: []string{"1"}},
		validCommands: commandsOf(ArchivePushCommand, ArchiveGetCommand),
	},
	BackupStandbyOption: {
		ID: BackupStandbyOption, Name: "backup-standby", Type: Boolean, Section: GlobalSection,
		DefaultValue: "0", HasDefault: true,
		validCommands: commandsOf(BackupCommand),
	},
	RepoRetentionFullOption: {
		ID: RepoRetentionFullOption, Name: "repo1-retention-full", Type: Integer, Section: GlobalSection,
		AllowRange:    &AllowRange{Min: 1, Max: 9999999},
		validCommands: commandsOf(BackupCommand),
	},
	OnlineOption: {
		ID: OnlineOption, Name: "online", Type: Boolean, Section: GlobalSection,
		DefaultValue: "1", HasDefault: true,
		validCommands: commandsOf(BackupCommand, CheckCommand),
	},
	RepoCipherPassOption: {
		ID: RepoCipherPassOption, Name: "repo-cipher-pass", Type: String, Section: GlobalSection,
		Secure:        true,
		validCommands: allCommands(),
	},
	PgPathOption: {
		ID: PgPathOption, Name: "pg-path", GroupID: PgGroup, Type: Path, Section: StanzaSection,
		Multi: true,
		validCommands: commandsOf(BackupCommand, RestoreCommand, ArchivePushCommand,
			ArchiveGetCommand, CheckCommand, StanzaCreateCommand),
	},
	PgPortOption: {
		ID: PgPortOption, Name: "pg-port", GroupID: PgGroup, Type: Integer, Section: StanzaSection,
		Multi: true, DefaultValue: "5432", HasDefault: true,
		AllowRange: &AllowRange{Min: 1, Max: 65535},
		validCommands: commandsOf(BackupCommand, RestoreCommand, ArchivePushCommand,
			ArchiveGetCommand, CheckCommand, StanzaCreateCommand),
	},
	RepoPathOption: {
		ID: RepoPathOption, Name: "repo-path", GroupID: RepoGroup, Type: Path, Section: GlobalSection,
		Multi:         true,
		validCommands: allCommands(),
	},
	RepoTypeOption: {
		ID: RepoTypeOption, Name: "repo-type", GroupID: RepoGroup, Type: String, Section: GlobalSection,
		Multi: true, DefaultValue: "posix", HasDefault: true,
		AllowList:     []string{"posix", "s3", "azure", "gcs"},
		validCommands: allCommands(),
	},
	RecoveryOptionOption: {
		ID: RecoveryOptionOption, Name: "recovery-option", Type: Hash, Section: StanzaSection,
		Multi:         true,
		validCommands: commandsOf(RestoreCommand),
	},
	DbIncludeOption: {
		ID: DbIncludeOption, Name: "db-include", Type: List, Section: StanzaSection,
		Multi:         true,
		validCommands: commandsOf(RestoreCommand),
	},
}

// All returns every [*OptionMeta] known to the parser. The returned map
// must not be mutated; it is shared, generated-style data.
func All() map[OptionID]*OptionMeta {
	return table
}

// Lookup returns the [*OptionMeta] for id, or nil if id is unknown.
func Lookup(id OptionID) *OptionMeta {
	return table[id]
}

// groupTemplate describes how a group's raw-index CLI/env/ini names are
// formed: <Prefix><index><Suffix>, e.g. Prefix="pg" Suffix="-path".
type groupTemplate struct {
	ID     OptionID
	Prefix string
	Suffix string
}

var groupTemplates = []groupTemplate{
	{ID: PgPathOption, Prefix: "pg", Suffix: "-path"},
	{ID: PgPortOption, Prefix: "pg", Suffix: "-port"},
	{ID: RepoPathOption, Prefix: "repo", Suffix: "-path"},
	{ID: RepoTypeOption, Prefix: "repo", Suffix: "-type"},
}

// deprecatedAlias describes a legacy flat name that maps onto a fixed
// raw index of a grouped option (spec.md §8 scenario 3: "repo-path" is
// an alias for "repo1-path").
type deprecatedAlias struct {
	Name        string
	CanonicalID OptionID
	RawIndex    int
}

var deprecatedAliases = []deprecatedAlias{
	{Name: "repo-path", CanonicalID: RepoPathOption, RawIndex: 1},
	{Name: "repo-type", CanonicalID: RepoTypeOption, RawIndex: 1},
}

// nonGroupNames indexes every option that is not part of a group by its
// canonical flat name.
var nonGroupNames = func() map[string]OptionID {
	out := make(map[string]OptionID)
	for id, meta := range table {
		if meta.GroupID == NoGroup {
			out[meta.Name] = id
		}
	}
	return out
}()

var deprecatedByName = func() map[string]deprecatedAlias {
	out := make(map[string]deprecatedAlias)
	for _, alias := range deprecatedAliases {
		out[alias.Name] = alias
	}
	return out
}()
