// Copyright 2024 The lite-manager Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lm

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileReader opens a path for reading. The core consumes this contract
// rather than calling os.Open directly, so callers (and tests) can swap in
// an in-memory filesystem.
type FileReader func(path string) (io.ReadCloser, error)

// PathJoiner joins a base directory and a relative path the way the
// declaration parser's base-path tracking requires: base "." is the
// identity (spec.md §4.5).
type PathJoiner func(base, rel string) string

// Globber expands a single-directory wildcard pattern (spec.md §4.5's SRC
// row) into a list of matching file names.
type Globber func(dir, pattern string) ([]string, error)

func defaultFileReader(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func defaultPathJoiner(base, rel string) string {
	if base == "." || base == "" {
		return rel
	}
	return filepath.Join(base, rel)
}

// defaultGlobber matches the SRC wildcard rule's minimal contract: only
// "*.c" within dir. pkg/fsutil.Glob, which accepts the same single
// pattern, is the external collaborator the CLI substitutes; this default
// keeps the core self-sufficient for tests that don't wire one in.
func defaultGlobber(dir, pattern string) ([]string, error) {
	if pattern != "*.c" {
		return nil, newSyntaxError(pos{}, "unsupported wildcard pattern %q", pattern)
	}
	d := dir
	if d == "" {
		d = "."
	}
	entries, err := os.ReadDir(d)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".c" {
			matches = append(matches, e.Name())
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Session is the single owned run context threading the declared-symbol
// table, the user-override table, the twelve build-variable lists, and the
// external collaborator contracts through parsing and resolution. There is
// deliberately no package-level mutable session state (spec.md §9 Design
// Note): every run constructs its own Session.
type Session struct {
	Declared  *SymbolTable
	Overrides *SymbolTable
	Lists     VarLists

	ReadFile FileReader
	JoinPath PathJoiner
	Glob     Globber

	// LastError records the error that aborted the most recent
	// ParseDeclarations call, for callers that want to inspect it after a
	// run aborts (spec.md §7: "each error is emitted once"). Errors from
	// LoadUserConfig are returned but not recorded here.
	LastError error
}

// NewSession returns a Session wired to the default, real-filesystem
// collaborators.
func NewSession() *Session {
	return &Session{
		Declared:  NewSymbolTable(),
		Overrides: NewSymbolTable(),
		ReadFile:  defaultFileReader,
		JoinPath:  defaultPathJoiner,
		Glob:      defaultGlobber,
	}
}
