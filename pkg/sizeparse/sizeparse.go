// sizeparse.go - size-qualifier parsing.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sizeparse implements the size-qualifier grammar used by Size
// typed options (spec.md §4.7): a decimal integer optionally followed by
// one of b, k, kb, m, mb, g, gb, t, tb, p, pb (case-insensitive).
package sizeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatError indicates a value did not match the size grammar.
type FormatError struct {
	Value string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("value '%s' is not valid", e.Value)
}

var pattern = regexp.MustCompile(`(?i)^[0-9]+(kb|k|mb|m|gb|g|tb|t|pb|p|b)?$`)

var multipliers = map[byte]float64{
	'b': 1,
	'k': 1 << 10,
	'm': 1 << 20,
	'g': 1 << 30,
	't': 1 << 40,
	'p': 1 << 50,
}

// Parse parses a size string into a byte count, applying the qualifier
// rules of spec.md §4.7: the qualifier character is the last byte if it
// is not a digit; "b" preceded by a digit means the unit is bytes, "b"
// preceded by a letter means the unit is whatever that letter denotes
// (e.g. "kb" -> unit 'k').
func Parse(value string) (int64, error) {
	if !pattern.MatchString(value) {
		return 0, FormatError{Value: value}
	}

	unit := byte('b')
	numericPart := value
	if last := value[len(value)-1]; last < '0' || last > '9' {
		numericPart = value[:len(value)-1]
		switch {
		case last == 'b' || last == 'B':
			if prev := numericPart[len(numericPart)-1]; prev >= '0' && prev <= '9' {
				unit = 'b'
			} else {
				unit = lower(prev)
				numericPart = numericPart[:len(numericPart)-1]
			}
		default:
			unit = lower(last)
		}
	}

	n, err := strconv.ParseFloat(numericPart, 64)
	if err != nil {
		return 0, FormatError{Value: value}
	}

	multiplier, ok := multipliers[unit]
	if !ok {
		return 0, FormatError{Value: value}
	}
	return int64(n * multiplier), nil
}

func lower(b byte) byte {
	return byte(strings.ToLower(string(b))[0])
}
