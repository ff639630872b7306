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
	"strings"
	"testing"
)

func fakeReader(contents map[string]string) FileReader {
	return func(path string) (io.ReadCloser, error) {
		s, ok := contents[path]
		if !ok {
			return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestLoadUserConfigParsesOverrides(t *testing.T) {
	sess := NewSession()
	sess.ReadFile = fakeReader(map[string]string{
		".config": "# comment\nFEATURE_X = y\n\nDEBUG_LEVEL = 2\nUNSET_OPT =\n",
	})
	if err := LoadUserConfig(sess, ".config", true); err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}

	x, ok := sess.Overrides.Find("FEATURE_X")
	if !ok || x.Value != "y" {
		t.Errorf("FEATURE_X=%v,%v, want y,true", x, ok)
	}
	d, ok := sess.Overrides.Find("DEBUG_LEVEL")
	if !ok || d.Value != "2" {
		t.Errorf("DEBUG_LEVEL=%v,%v, want 2,true", d, ok)
	}
	u, ok := sess.Overrides.Find("UNSET_OPT")
	if !ok || u.Value != stateUnset {
		t.Errorf("UNSET_OPT=%q,%v, want unset state", u.Value, ok)
	}
}

func TestLoadUserConfigMissingRequestedFile(t *testing.T) {
	sess := NewSession()
	sess.ReadFile = fakeReader(map[string]string{})
	if err := LoadUserConfig(sess, ".config", true); err == nil {
		t.Fatalf("expected MissingFileError for an explicitly requested path")
	}
}

func TestLoadUserConfigMissingDefaultFileIsNotAnError(t *testing.T) {
	sess := NewSession()
	sess.ReadFile = fakeReader(map[string]string{})
	if err := LoadUserConfig(sess, ".config", false); err != nil {
		t.Fatalf("LoadUserConfig with unrequested missing default: %v", err)
	}
	if sess.Overrides.Len() != 0 {
		t.Errorf("expected no overrides, got %d", sess.Overrides.Len())
	}
}

func TestLoadUserConfigMalformedLine(t *testing.T) {
	sess := NewSession()
	sess.ReadFile = fakeReader(map[string]string{".config": "not an assignment\n"})
	if err := LoadUserConfig(sess, ".config", true); err == nil {
		t.Fatalf("expected a syntax error for a malformed line")
	}
}
