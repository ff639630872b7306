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
	"reflect"
	"testing"
)

func TestIsBlankLine(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t", true},
		{"foo", false},
		{"  foo", false},
	} {
		if got := isBlankLine(tc.in); got != tc.want {
			t.Errorf("isBlankLine(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsCommentLine(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"# comment", true},
		{"  # indented comment", true},
		{"not a comment", false},
		{"", false},
	} {
		if got := isCommentLine(tc.in); got != tc.want {
			t.Errorf("isCommentLine(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestJoinContinuations(t *testing.T) {
	lines := []string{
		`SRC += a.c \`,
		`b.c \`,
		`c.c`,
		`DEFINE += X`,
	}
	got, next := joinContinuations(lines, 0)
	want := "SRC += a.c b.c c.c"
	if got != want {
		t.Errorf("joinContinuations=%q, want %q", got, want)
	}
	if next != 3 {
		t.Errorf("next=%d, want 3", next)
	}
}

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"a b c", []string{"a", "b", "c"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`'a b' c`, []string{"a b", "c"}},
		{"  a   b  ", []string{"a", "b"}},
		{"", nil},
	} {
		got := tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("tokenize(%q)=%#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestExtractDoubleQuoted(t *testing.T) {
	got, ok := extractDoubleQuoted(`include "sub/lm.cfg"`)
	if !ok || got != "sub/lm.cfg" {
		t.Errorf("extractDoubleQuoted=%q,%v, want \"sub/lm.cfg\",true", got, ok)
	}
	if _, ok := extractDoubleQuoted("no quotes here"); ok {
		t.Errorf("expected ok=false for unquoted line")
	}
}

func TestExpandVars(t *testing.T) {
	decl := NewSymbolTable()
	s := decl.Insert("FOO")
	s.Value = "bar"

	got, err := expandVars("prefix-$(FOO)-suffix", decl)
	if err != nil {
		t.Fatalf("expandVars: %v", err)
	}
	if got != "prefix-bar-suffix" {
		t.Errorf("expandVars=%q, want %q", got, "prefix-bar-suffix")
	}

	if _, err := expandVars("unterminated $(FOO", decl); err == nil {
		t.Errorf("expected syntax error for unterminated reference")
	}
}
