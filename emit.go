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

// SymbolEmission is the per-symbol rendering the external header/mk writer
// needs, precomputed by EmitView so pkg/genwriter stays a pure formatter
// with no knowledge of the resolution rules (spec.md §4.7).
type SymbolEmission struct {
	Name string
	// HeaderLine is the #define line for config.h, or "" when the symbol
	// gets no #define (the "n" disabled state, and the " " unset state,
	// which gets HeaderComment instead).
	HeaderLine string
	// HeaderComment is emitted instead of HeaderLine when non-empty (the
	// " " unset state's "// NAME is not set" line).
	HeaderComment string
	// MkLine is the "NAME = VALUE" line for .lm.mk, or "" to skip the
	// symbol there (the " " unset state).
	MkLine string
}

// VarListEmission is one "<VARNAME> := <tokens>" line for .lm.mk.
type VarListEmission struct {
	Name   string
	Tokens []string
}

// EmitView is the read-only snapshot the core hands to the external
// Makefile/header writer: every decision about *what* a symbol's value
// means has already been made here, per spec.md §4.7's contract boundary.
type EmitView struct {
	Symbols []SymbolEmission
	Lists   []VarListEmission
}

// Emit returns sess's read-only snapshot for the external writer.
func (sess *Session) Emit() EmitView {
	return BuildEmitView(sess.Declared, &sess.Lists)
}

// Counts reports the post-resolution summary counts (pkg/ui's --blind
// table): total resolved symbols and how many disabled ("n").
func (sess *Session) Counts() (total, disabled int) {
	for _, s := range sess.Declared.Iterate() {
		if s.Value == "" {
			continue
		}
		total++
		if s.Value == stateDisabled {
			disabled++
		}
	}
	return total, disabled
}

// BuildEmitView walks decl in insertion order and lists in their fixed
// order, producing the emitter-ready snapshot.
func BuildEmitView(decl *SymbolTable, lists *VarLists) EmitView {
	v := EmitView{}
	for _, s := range decl.Iterate() {
		if s.Value == "" {
			continue
		}
		v.Symbols = append(v.Symbols, emitSymbol(s))
	}
	for _, nl := range lists.Names() {
		if len(nl.List) == 0 {
			continue
		}
		v.Lists = append(v.Lists, VarListEmission{Name: nl.Name, Tokens: []string(nl.List)})
	}
	return v
}

func emitSymbol(s *Symbol) SymbolEmission {
	e := SymbolEmission{Name: s.Name}
	switch s.Value {
	case stateUnset:
		e.HeaderComment = "// " + s.Name + " is not set"
		e.MkLine = ""
	case "y":
		e.HeaderLine = "#define " + s.Name + " 1"
		e.MkLine = s.Name + " = y"
	case stateLiteralN:
		e.HeaderLine = "#define " + s.Name + " n"
		e.MkLine = s.Name + " = 'n'"
	case stateDisabled:
		e.MkLine = s.Name + " = n"
	default:
		e.HeaderLine = "#define " + s.Name + " " + s.Value
		e.MkLine = s.Name + " = " + s.Value
	}
	return e
}
