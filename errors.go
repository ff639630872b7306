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
	"fmt"

	"github.com/pkg/errors"
)

// pos identifies a source location for diagnostics, mirroring the
// teacher's srcpos/Error/Warn "file:line: message" shape.
type pos struct {
	file string
	line int
}

func (p pos) String() string {
	if p.file == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", p.file, p.line)
}

func (p pos) prefix() string {
	if p.file == "" {
		return ""
	}
	return p.String() + ": "
}

// SyntaxError reports an unrecognized line, unterminated quote, bad range,
// missing '=', or stray trailing characters.
type SyntaxError struct {
	Pos     pos
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Pos.prefix() + e.Message
}

func newSyntaxError(p pos, format string, a ...interface{}) error {
	return errors.WithStack(&SyntaxError{Pos: p, Message: fmt.Sprintf(format, a...)})
}

// MissingChoiceError reports a symbol block that closed without a
// 'choices' attribute.
type MissingChoiceError struct {
	Pos  pos
	Name string
}

func (e *MissingChoiceError) Error() string {
	return e.Pos.prefix() + fmt.Sprintf("%s: missing 'choice' attribute", e.Name)
}

func newMissingChoiceError(p pos, name string) error {
	return errors.WithStack(&MissingChoiceError{Pos: p, Name: name})
}

// InvalidValueError reports a user or default value that fails choice or
// range validation. It prints the legal choice set (or numeric range)
// alongside the offending value, matching spec scenario 4's message shape.
type InvalidValueError struct {
	Pos     pos
	Name    string
	Value   string
	Reason  string // "value is invalid" or "invalid default value"
	Choices []string
	Range   *[2]float64
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("%s: %s: %q", e.Name, e.Reason, e.Value)
	if e.Range != nil {
		return e.Pos.prefix() + msg + fmt.Sprintf(" You can choose: [%v ~ %v]", formatNumber(e.Range[0]), formatNumber(e.Range[1]))
	}
	return e.Pos.prefix() + msg + fmt.Sprintf(" You can choose: %v", e.Choices)
}

func newInvalidValueError(p pos, name, value, reason string, choices []string, rng *[2]float64) error {
	return errors.WithStack(&InvalidValueError{Pos: p, Name: name, Value: value, Reason: reason, Choices: choices, Range: rng})
}

// InvalidDependError reports a depends expression that fails to parse or
// that leaves trailing junk after evaluation.
type InvalidDependError struct {
	Pos     pos
	Expr    string
	Message string
}

func (e *InvalidDependError) Error() string {
	return e.Pos.prefix() + fmt.Sprintf("invalid depends %q: %s", e.Expr, e.Message)
}

func newInvalidDependError(p pos, expr, format string, a ...interface{}) error {
	return errors.WithStack(&InvalidDependError{Pos: p, Expr: expr, Message: fmt.Sprintf(format, a...)})
}

// UndefinedSymbolError reports a depends expression referencing a symbol
// not yet declared in the declared-symbol table.
type UndefinedSymbolError struct {
	Pos  pos
	Name string
}

func (e *UndefinedSymbolError) Error() string {
	return e.Pos.prefix() + fmt.Sprintf("%s not found", e.Name)
}

func newUndefinedSymbolError(p pos, name string) error {
	return errors.WithStack(&UndefinedSymbolError{Pos: p, Name: name})
}

// MissingFileError reports a requested input file that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: no such file", e.Path)
}

func newMissingFileError(path string) error {
	return errors.WithStack(&MissingFileError{Path: path})
}
