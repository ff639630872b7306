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

package lm_test

import (
	"io"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	lm "github.com/sgl-org/lite-manager"
	"github.com/sgl-org/lite-manager/pkg/genwriter"
)

func newRoundTripSession(cfg string) *lm.Session {
	sess := lm.NewSession()
	sess.ReadFile = func(path string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(cfg)), nil
	}
	return sess
}

// TestRoundTripMkIsStable re-parses and re-emits the same declaration tree
// twice and asserts the rendered .lm.mk is byte-identical both times, the
// way run_test.go compares two build systems' output for the same project.
func TestRoundTripMkIsStable(t *testing.T) {
	cfg := "FEAT\n" +
		"    choices=y, n\n" +
		"    default=\"y\"\n" +
		"BUF_SIZE\n" +
		"    choices=[1, 1024]\n" +
		"    default=256\n" +
		"SRC-$(FEAT) += impl.c\n" +
		"SRC += common.c\n" +
		"DEFINE += DEBUG\n"

	renderMk := func() string {
		sess := newRoundTripSession(cfg)
		if err := lm.ParseDeclarations(sess, ".", "lm.cfg"); err != nil {
			t.Fatalf("ParseDeclarations: %v", err)
		}
		var buf strings.Builder
		if err := genwriter.WriteMk(&buf, sess.Emit()); err != nil {
			t.Fatalf("WriteMk: %v", err)
		}
		return buf.String()
	}

	first := renderMk()
	second := renderMk()

	if first != second {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(first, second, true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		t.Errorf("re-parsing and re-emitting the same tree produced different .lm.mk output:\n%s", dmp.DiffPrettyText(diffs))
	}
	if !strings.Contains(first, "impl.c") || !strings.Contains(first, "common.c") {
		t.Errorf("rendered .lm.mk missing expected C_SOURCE entries:\n%s", first)
	}
}

// TestRoundTripMkAsUserConfigReproducesValues exercises the property
// spec.md §8 actually names: emitting .lm.mk and re-parsing it as a
// .config yields a user table that, fed back against the same lm.cfg,
// reproduces the same resolved values.
func TestRoundTripMkAsUserConfigReproducesValues(t *testing.T) {
	cfg := "FEAT\n" +
		"    choices=y, n\n" +
		"    default=\"n\"\n" +
		"MODE\n" +
		"    choices=fast, slow, turbo\n" +
		"    default=\"slow\"\n" +
		"BUF_SIZE\n" +
		"    choices=[1, 1024]\n" +
		"    default=256\n"

	first := newRoundTripSession(cfg)
	if err := lm.ParseDeclarations(first, ".", "lm.cfg"); err != nil {
		t.Fatalf("ParseDeclarations (first pass): %v", err)
	}

	var mkBuf strings.Builder
	if err := genwriter.WriteMk(&mkBuf, first.Emit()); err != nil {
		t.Fatalf("WriteMk: %v", err)
	}
	mkText := mkBuf.String()

	second := newRoundTripSession(cfg)
	second.ReadFile = func(path string) (io.ReadCloser, error) {
		if path == ".config" {
			return io.NopCloser(strings.NewReader(mkText)), nil
		}
		return io.NopCloser(strings.NewReader(cfg)), nil
	}
	if err := lm.LoadUserConfig(second, ".config", true); err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if err := lm.ParseDeclarations(second, ".", "lm.cfg"); err != nil {
		t.Fatalf("ParseDeclarations (second pass): %v", err)
	}

	for _, name := range []string{"FEAT", "MODE", "BUF_SIZE"} {
		want, ok := first.Declared.Find(name)
		if !ok {
			t.Fatalf("first pass never declared %s", name)
		}
		got, ok := second.Declared.Find(name)
		if !ok {
			t.Fatalf("second pass never declared %s", name)
		}
		if got.Value != want.Value {
			t.Errorf("%s: re-resolved value %q, want %q (first pass's value)", name, got.Value, want.Value)
		}
	}
}
