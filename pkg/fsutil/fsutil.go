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

// Package fsutil implements the filesystem helpers lite-manager's core
// explicitly keeps out of scope: recursive-one-level delete, file copy, and
// the SRC wildcard glob the core consumes through the Session.Glob contract.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// RemoveOneLevel implements --rm: a plain file is removed outright; for a
// directory, each immediate child is removed (a child directory together
// with everything under it) and the directory itself is kept.
func RemoveOneLevel(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if !info.IsDir() {
		return errors.WithStack(os.Remove(path))
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.WithStack(err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(path, e.Name())); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// CopyFile implements --cp: a single regular-file copy preserving the
// source's permission bits.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.WithStack(err)
	}
	return errors.WithStack(out.Close())
}

// Glob backs the core's Session.Glob contract. Only the "*.c" pattern
// within a single directory is supported, per spec.md §9's Open Question
// resolution: richer wildcards (`**`, non-`.c` extensions) are rejected
// with a clear error rather than silently matching nothing.
func Glob(dir, pattern string) ([]string, error) {
	if pattern != "*.c" {
		return nil, fmt.Errorf("fsutil: unsupported wildcard pattern %q (only \"*.c\" is accepted)", pattern)
	}
	d := dir
	if d == "" {
		d = "."
	}
	entries, err := os.ReadDir(d)
	if err != nil {
		return nil, errors.WithStack(err)
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

// MkdirAll ensures dir (and any missing parents) exists, for --out/--mk/
// --gen destination directories.
func MkdirAll(dir string) error {
	return errors.WithStack(os.MkdirAll(dir, 0o755))
}
