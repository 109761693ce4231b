// doc.go - package documentation.
// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package pgbackrest provides the command entry point used by the
pgbackrest-style backup/restore tool built in this module. The actual
configuration parsing pipeline (argument scan, environment scan, config
file loading, group compaction and dependency-resolved validation) lives
in the internal phase packages, which this package's [Parse] composes
into one call; its result is a
[github.com/archivewright/pgbackrest/pkg/config.Config]. The command
entry point wires argv/env into [Parse] and dispatches the resolved
command to its implementation.

To use this package proceed as follows:

 1. Create a [RootCommand] containing a [LeafCommand].

 2. Inside the [LeafCommand]'s Run function, call [Parse] to run the
    full five-phase configuration pipeline and obtain a resolved
    [github.com/archivewright/pgbackrest/pkg/config.Config], then
    dispatch on its CommandID.

See the package examples for more information.

# RootCommand

The [*RootCommand] optionally allows to react to signals and otherwise
dispatches the work to the [*LeafCommand] it contains.

# LeafCommand

pgBackRest's option grammar (open-ended `pg<N>-path`-style indexed
names, `no-`/`reset-` prefixes, per-command validity, config-file and
environment merging) does not fit a generic, statically-registered
flag-parsing API, so [cmd/pgbackrest]'s [LeafCommand] does not parse
its own flags: its Run function calls [Parse] directly, which
subsumes everything flag parsing would otherwise do for it.

# Testability

All top-level types depend on an abstract T type, bounded by the
[ExecEnv] interface. The default implementation, using the standard
library, but highly customizable is [*StdlibExecEnv]. By using
such an interface, it is possible to write highly testable code
where most of the environment dependencies can be mocked.
*/
package pgbackrest
