//go:build windows

// signals_windows.go - Windows-specific signals code.
// SPDX-License-Identifier: GPL-3.0-or-later

package pgbackrest

import "syscall"

var interruptSignals = []Signal{syscall.SIGINT}
