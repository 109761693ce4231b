// storage.go - local filesystem storage adapter.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage is the local filesystem collaborator the file loader
// (P3) treats as a black box (spec.md §1 "local filesystem storage
// adapter — used to read files with an ignore-missing flag").
//
// Following the teacher's [pgbackrest.ExecEnv] pattern of injecting an
// interface so the real dependency (the OS) can be swapped for a fake in
// tests, [Storage] is an interface with one production implementation,
// [*LocalStorage], built on the standard library.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// ErrNotFound is returned by [Storage.ReadFile] when the path does not
// exist and ignoreMissing is false.
var ErrNotFound = errors.New("file not found")

// Storage is the contract the file loader depends on.
type Storage interface {
	// ReadFile reads path. When ignoreMissing is true and the file does
	// not exist, it returns (nil, false, nil) instead of an error.
	ReadFile(path string, ignoreMissing bool) (data []byte, found bool, err error)

	// ListConfFiles lists the "*.conf" entries (spec.md §4.4 step 3) of a
	// directory in ascending name order "for reproducibility only". When
	// ignoreMissing is true and the directory does not exist, it returns
	// (nil, false, nil) instead of an error.
	ListConfFiles(dir string, ignoreMissing bool) (entries []string, found bool, err error)
}

// LocalStorage implements [Storage] using the local filesystem.
//
// The zero value is ready to use. ReadFileFunc/ReadDirFunc are exposed so
// tests can substitute an in-memory filesystem without touching disk,
// mirroring the teacher's StdlibExecEnv override-functions pattern.
type LocalStorage struct {
	ReadFileFunc func(string) ([]byte, error)
	ReadDirFunc  func(string) ([]os.DirEntry, error)
}

var _ Storage = &LocalStorage{}

// NewLocalStorage returns a [*LocalStorage] backed by the real os package.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		ReadFileFunc: os.ReadFile,
		ReadDirFunc:  os.ReadDir,
	}
}

// ReadFile implements [Storage].
func (s *LocalStorage) ReadFile(path string, ignoreMissing bool) ([]byte, bool, error) {
	data, err := s.ReadFileFunc(path)
	switch {
	case err == nil:
		return data, true, nil
	case os.IsNotExist(err) && ignoreMissing:
		return nil, false, nil
	case os.IsNotExist(err):
		return nil, false, ErrNotFound
	default:
		return nil, false, err
	}
}

var confFilePattern = regexp.MustCompile(`.+\.conf$`)

// ListConfFiles implements [Storage].
func (s *LocalStorage) ListConfFiles(dir string, ignoreMissing bool) ([]string, bool, error) {
	entries, err := s.ReadDirFunc(dir)
	switch {
	case err == nil:
		// fallthrough to filtering below
	case os.IsNotExist(err) && ignoreMissing:
		return nil, false, nil
	case os.IsNotExist(err):
		return nil, false, ErrNotFound
	default:
		return nil, false, err
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !confFilePattern.MatchString(entry.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(out)
	return out, true, nil
}
