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

// ResolveSymbol computes s.Value per spec.md §4.6, consulting overrides for
// a user-supplied value and decl for evaluating s.Depends (a symbol's
// depends expression may reference any symbol already declared, including
// itself's siblings but never itself).
func ResolveSymbol(s *Symbol, decl, overrides *SymbolTable) error {
	ok, err := evaluateDepends(s.Depends, decl, s.Pos)
	if err != nil {
		return err
	}
	if !ok {
		s.Value = stateDisabled
		return nil
	}

	u, present := overrides.Find(s.Name)
	if !present {
		return resolveFromDefault(s)
	}

	switch u.Value {
	case stateDisabled:
		s.Value = stateDisabled
		return nil
	case stateLiteralN:
		if !s.validateChoice("n") {
			return newInvalidValueError(s.Pos, s.Name, u.Value, "value is invalid", s.Choices, rangeOf(s))
		}
		s.Value = stateLiteralN
		return nil
	default:
		if !s.validateChoice(u.Value) {
			return newInvalidValueError(s.Pos, s.Name, u.Value, "value is invalid", s.Choices, rangeOf(s))
		}
		s.Value = u.Value
		return nil
	}
}

// resolveFromDefault handles step 3: no user override present, so fall
// back to the declared default, or to the first choice if there is none.
func resolveFromDefault(s *Symbol) error {
	if s.DefaultPresent {
		v := s.DefaultStr
		if s.isNumber() {
			v = formatNumber(s.DefaultNum)
		}
		if !s.validateChoice(v) {
			return newInvalidValueError(s.Pos, s.Name, v, "invalid default value", s.Choices, rangeOf(s))
		}
		s.Value = v
		return nil
	}
	if s.isNumber() {
		s.Value = formatNumber(s.Range[0])
		return nil
	}
	if len(s.Choices) == 0 {
		return newMissingChoiceError(s.Pos, s.Name)
	}
	s.Value = s.Choices[0]
	return nil
}

// rangeOf returns s.Range as the *[2]float64 InvalidValueError wants, or
// nil for a String symbol (whose Choices list is printed instead).
func rangeOf(s *Symbol) *[2]float64 {
	if !s.isNumber() {
		return nil
	}
	r := s.Range
	return &r
}

// ResolveAll resolves every declared symbol in insertion order, stopping at
// the first error (spec.md §5: a hard error aborts the whole run).
func ResolveAll(decl, overrides *SymbolTable) error {
	for _, s := range decl.Iterate() {
		if err := ResolveSymbol(s, decl, overrides); err != nil {
			return err
		}
	}
	return nil
}
