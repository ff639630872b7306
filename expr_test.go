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

import "testing"

func newResolvedSymbolTable(t *testing.T, values map[string]string) *SymbolTable {
	t.Helper()
	tbl := NewSymbolTable()
	for name, v := range values {
		s := tbl.Insert(name)
		s.Value = v
	}
	return tbl
}

func TestEvaluateDependsPrecedence(t *testing.T) {
	decl := newResolvedSymbolTable(t, map[string]string{
		"A": "y",
		"B": stateDisabled,
		"C": "y",
	})
	for _, tc := range []struct {
		expr string
		want bool
	}{
		{"", true},
		{"A", true},
		{"B", false},
		{"!B", true},
		{"A & B", false},
		{"A | B", true},
		{"!B & C", true},
		{"A & B | C", true}, // (A & B) | C => false | true
		{"A & (B | C)", true},
		{"!(A & B)", true},
	} {
		got, err := evaluateDepends(tc.expr, decl, pos{})
		if err != nil {
			t.Fatalf("evaluateDepends(%q): %v", tc.expr, err)
		}
		if got != tc.want {
			t.Errorf("evaluateDepends(%q)=%v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateDependsUndefinedSymbol(t *testing.T) {
	decl := NewSymbolTable()
	if _, err := evaluateDepends("ZZ", decl, pos{}); err == nil {
		t.Fatalf("expected UndefinedSymbolError for ZZ")
	}
}

func TestEvaluateDependsTrailingJunk(t *testing.T) {
	decl := newResolvedSymbolTable(t, map[string]string{"A": "y"})
	if _, err := evaluateDepends("A )", decl, pos{}); err == nil {
		t.Fatalf("expected InvalidDependError for trailing junk")
	}
}

func TestEvaluateDependsUnbalancedParen(t *testing.T) {
	decl := newResolvedSymbolTable(t, map[string]string{"A": "y"})
	if _, err := evaluateDepends("(A", decl, pos{}); err == nil {
		t.Fatalf("expected InvalidDependError for unbalanced parenthesis")
	}
}
