// argscan.go - phase 1, command-line argument scan.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package argscan implements phase 1 of the parser pipeline: a single
// left-to-right walk of argv that classifies each token as the command,
// a command parameter, or an option, and populates a
// [parseopt.Table] (spec.md §4.2).
//
// Tokenization is built directly on the teacher's [scanner.Scanner]
// rather than on a statically-registered flag parser: such a parser
// requires every accepted option name to be registered up front as a
// literal string, which
// cannot express the unbounded `pg<N>-path`/`repo<N>-path` families or
// the `no-`/`reset-` modifier prefixes without enumerating an
// arbitrary cutoff. Scanning raw "--name[=value]" tokens and resolving
// them through [optmeta] keeps the option universe open-ended while
// still reusing the teacher's tokenizer for prefix/positional
// splitting.
package argscan

import (
	"fmt"
	"strings"

	"github.com/archivewright/pgbackrest/internal/logx"
	"github.com/archivewright/pgbackrest/internal/parseopt"
	"github.com/archivewright/pgbackrest/internal/perror"
	"github.com/archivewright/pgbackrest/pkg/optmeta"
	"github.com/archivewright/pgbackrest/pkg/scanner"
)

// Result is the outcome of a successful scan.
type Result struct {
	// ExePath is the program name (argv[0]).
	ExePath string

	// HasCommand is false only when no concrete command was set,
	// i.e. help was requested with no named command.
	HasCommand bool

	// Command is meaningful only when HasCommand is true.
	Command optmeta.CommandID

	// Role is the optional `:role` suffix, e.g. "local"/"remote".
	Role string

	// Params holds positional command parameters.
	Params []string

	// HelpRequested is true when the command was `help`, or argv
	// carried no arguments at all.
	HelpRequested bool

	// Table is the staging table populated with every Param-sourced
	// value discovered during the scan.
	Table *parseopt.Table
}

const optionPrefix = "--"

// Scan walks argv (which must include the program name at index 0)
// and produces a [*Result] or a parser error from the spec.md §7
// taxonomy. Deprecated alias usage is reported through logger as a
// warning, never as an error (spec.md §7 "Deprecated alias usage on
// the command line is a warning, not an error").
func Scan(argv []string, logger logx.Logger) (*Result, error) {
	if logger == nil {
		logger = logx.Discard
	}

	sx := &scanner.Scanner{Prefixes: []string{optionPrefix}}
	tokens, err := sx.Scan(argv)
	if err != nil {
		return nil, err
	}
	perror.Assertf(len(tokens) >= 1, "scanner always emits a program name token")
	pname, ok := tokens[0].(scanner.ProgramNameToken)
	perror.Assertf(ok, "first token must be the program name")
	tokens = tokens[1:]

	res := &Result{ExePath: pname.Name, Table: parseopt.NewTable()}
	var firstTokenSeen bool

	for _, tok := range tokens {
		switch tok := tok.(type) {

		case scanner.ArgumentToken:
			if !firstTokenSeen {
				firstTokenSeen = true
				if err := setCommand(res, tok.Value); err != nil {
					return nil, err
				}
				continue
			}
			res.Params = append(res.Params, tok.Value)

		case scanner.OptionToken:
			if err := applyOption(res, tok, logger); err != nil {
				return nil, err
			}

		default:
			perror.Assertf(false, "unexpected token type %T from scanner", tok)
		}
	}

	if !firstTokenSeen {
		if len(argv) <= 1 {
			res.HelpRequested = true
			return res, nil
		}
		return nil, perror.CommandRequiredError{}
	}
	if len(res.Params) > 0 && !res.HelpRequested && !optmeta.AllowsParams(res.Command) {
		return nil, perror.ParamInvalidError{Command: optmeta.CommandName(res.Command)}
	}
	return res, nil
}

func setCommand(res *Result, raw string) error {
	name, role, _ := strings.Cut(raw, ":")
	if name == "help" {
		res.HelpRequested = true
		return nil
	}
	id, ok := optmeta.LookupCommand(name)
	if !ok || !optmeta.ValidRole(role) {
		return perror.CommandInvalidError{Command: raw}
	}
	res.HasCommand = true
	res.Command = id
	res.Role = role
	return nil
}

func applyOption(res *Result, tok scanner.OptionToken, logger logx.Logger) error {
	literal := tok.Prefix + tok.Name

	rawName, rawValue, hasValue := strings.Cut(tok.Name, "=")

	bare, negate, reset := optmeta.SplitModifier(rawName)
	resolved, ok := optmeta.ResolveBareName(bare)
	if !ok {
		return perror.OptionInvalidError{Message: fmt.Sprintf("invalid option '%s'", literal)}
	}
	meta := optmeta.Lookup(resolved.ID)
	perror.Assertf(meta != nil, "resolved option id %d missing from table", resolved.ID)

	if meta.Secure {
		return perror.OptionInvalidError{Message: fmt.Sprintf(
			"option '%s' is not allowed on the command line\nHINT: use the configuration file or an environment variable instead",
			meta.Name)}
	}

	if resolved.Deprecated {
		logger.Warnf("option '%s' is deprecated, use '%s' instead", bare, optmeta.CLIName(meta, resolved.RawIndex))
	}

	// negate/reset are flag forms: they never carry a value, regardless
	// of the option's type (spec.md §4.6 step 5 treats negate as legal
	// for any type, not only Boolean).
	takesValue := meta.Type != optmeta.Boolean && !negate && !reset

	var value string
	switch {
	case takesValue && !hasValue:
		return perror.OptionInvalidError{Message: fmt.Sprintf(
			"option '%s%s' requires argument", tok.Prefix, rawName)}
	case takesValue:
		value = rawValue
	case hasValue:
		return perror.OptionInvalidError{Message: fmt.Sprintf(
			"option '%s%s' does not allow an argument", tok.Prefix, rawName)}
	}

	pv := res.Table.Get(resolved.ID, resolved.RawIndex)
	wasSet := pv.Found && !pv.Negate && !pv.Reset
	newlySet := !negate && !reset

	switch {
	case !pv.Found:
		pv.Found = true
		pv.Negate = negate
		pv.Reset = reset
		pv.Source = parseopt.SourceParam
		if takesValue {
			pv.Values = []string{value}
		}
		return nil

	case negate && pv.Negate:
		return conflict(meta, "cannot be negated multiple times")
	case reset && pv.Reset:
		return conflict(meta, "cannot be reset multiple times")
	case (pv.Reset && negate) || (pv.Negate && reset):
		return conflict(meta, "cannot be negated and reset")
	case (wasSet && negate) || (pv.Negate && newlySet):
		return conflict(meta, "cannot be set and negated")
	case (wasSet && reset) || (pv.Reset && newlySet):
		return conflict(meta, "cannot be set and reset")
	case wasSet && newlySet && !meta.Multi:
		return conflict(meta, "cannot be set multiple times")
	}

	if meta.Multi && takesValue {
		pv.Values = append(pv.Values, value)
	}
	return nil
}

func conflict(meta *optmeta.OptionMeta, reason string) error {
	return perror.OptionInvalidError{Message: fmt.Sprintf("option '%s' %s", meta.Name, reason)}
}
