// errors.go - parser error taxonomy.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package perror defines the error kinds shared by every phase of the
// parser (spec.md §7 "Taxonomy (kinds, not types)"). Each kind is a
// distinct Go type so callers can use errors.As to recover structured
// detail, following the teacher's habit (pkg/nparser, pkg/getopt) of
// one exported error struct per failure mode instead of sentinel
// values or error-code integers.
package perror

import "fmt"

// CommandInvalidError indicates an unrecognized command name.
type CommandInvalidError struct {
	Command string
}

func (e CommandInvalidError) Error() string {
	return fmt.Sprintf("invalid command '%s'", e.Command)
}

// CommandRequiredError indicates argv carried arguments but no command.
type CommandRequiredError struct{}

func (e CommandRequiredError) Error() string {
	return "no command found"
}

// ParamInvalidError indicates positional parameters were given to a
// command that does not accept any.
type ParamInvalidError struct {
	Command string
}

func (e ParamInvalidError) Error() string {
	return fmt.Sprintf("command '%s' does not allow parameters", e.Command)
}

// OptionInvalidError reports a structural option problem: unknown
// option, duplicate, negate/reset/set conflicts, not-valid-for-command,
// or a dependency failure detected on a Param-sourced value.
type OptionInvalidError struct {
	Message string
}

func (e OptionInvalidError) Error() string {
	return e.Message
}

// OptionInvalidValueError reports a semantic problem with an option's
// value: bad boolean, bad number, bad path, out of range, not in an
// allow-list, empty value, or malformed key=value.
type OptionInvalidValueError struct {
	Message string
}

func (e OptionInvalidValueError) Error() string {
	return e.Message
}

// OptionRequiredError indicates a required option had no value after
// dependency resolution and defaulting.
type OptionRequiredError struct {
	Message string
}

func (e OptionRequiredError) Error() string {
	return e.Message
}

// AssertError indicates an internal invariant was violated: a
// programmer error rather than bad user input.
type AssertError struct {
	Message string
}

func (e AssertError) Error() string {
	return fmt.Sprintf("assertion failed: %s", e.Message)
}

// Assertf panics with an [AssertError] if condition is false. Every
// phase uses this instead of the teacher's bare pkg/assert.True so the
// panic value carries the taxonomy's AssertError type; a recover site
// can type-assert it like any other parser error.
func Assertf(condition bool, format string, args ...any) {
	if !condition {
		panic(AssertError{Message: fmt.Sprintf(format, args...)})
	}
}
