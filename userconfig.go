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
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadUserConfig reads a .config/proj.cfg file into sess.Overrides, per
// spec.md §4.3. requested marks whether the path was explicitly passed by
// the caller (e.g. via --projcfg): a missing requested file is a
// MissingFileError, but a missing default path is silently treated as "no
// overrides".
func LoadUserConfig(sess *Session, path string, requested bool) error {
	rc, err := sess.ReadFile(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			if requested {
				return newMissingFileError(path)
			}
			return nil
		}
		return errors.WithStack(err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if isBlankLine(line) || isCommentLine(line) {
			continue
		}
		p := pos{file: path, line: lineno}
		name, value, ok := splitUserConfigLine(line)
		if !ok {
			return newSyntaxError(p, "malformed line %q", line)
		}
		s := sess.Overrides.Insert(name)
		s.Pos = p
		if value == "" {
			value = stateUnset
		}
		s.Value = value
	}
	if err := scanner.Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// splitUserConfigLine recognizes "NAME = VALUE" (with arbitrary inner
// whitespace around '='), returning the trimmed name and the
// head/tail-trimmed value.
func splitUserConfigLine(line string) (name, value string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:i])
	if name == "" {
		return "", "", false
	}
	value = strings.TrimSpace(line[i+1:])
	return name, value, true
}
