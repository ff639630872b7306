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
	"io"
	ppath "path"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ParseDeclarations parses the lm.cfg tree rooted at base-joined rel into
// sess.Declared, resolving each symbol immediately after its block closes
// (spec.md §4.5/§4.6) and accumulating sess.Lists along the way.
func ParseDeclarations(sess *Session, base, rel string) error {
	err := parseFile(sess, base, rel)
	if err != nil {
		sess.LastError = err
	}
	return err
}

func parseFile(sess *Session, base, rel string) error {
	full := sess.JoinPath(base, rel)
	rc, err := sess.ReadFile(full)
	if err != nil {
		return newMissingFileError(full)
	}
	defer rc.Close()

	lines, err := readAllLines(rc)
	if err != nil {
		return errors.WithStack(err)
	}
	glog.V(2).Infof("lm: parsing %s (base=%q)", full, base)

	decl := sess.Declared
	var cur *Symbol

	i := 0
	for i < len(lines) {
		lineno := i + 1
		raw, next := joinContinuations(lines, i)
		i = next
		p := pos{file: full, line: lineno}

		blank := isBlankLine(raw)
		comment := isCommentLine(raw)
		indent := leadingSpaces(raw)
		isAttr := cur != nil && !blank && !comment && indent == 4 && indent < len(raw) && raw[indent] != ' '

		if isAttr {
			if err := applyAttribute(cur, strings.TrimSpace(raw[4:]), p); err != nil {
				return err
			}
			continue
		}

		if cur != nil {
			if err := ResolveSymbol(cur, decl, sess.Overrides); err != nil {
				return err
			}
			glog.V(3).Infof("lm: resolved %s = %q", cur.Name, cur.Value)
			cur = nil
		}

		if blank || comment {
			continue
		}
		if indent != 0 {
			return newSyntaxError(p, "unexpected indentation")
		}

		trimmed := raw

		path, cond, hasCond, isInclude, err := parseIncludeLine(trimmed, p)
		if err != nil {
			return err
		}
		if isInclude {
			if hasCond {
				ok, err := evaluateKeyDepend(cond, decl, p)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			childFull := sess.JoinPath(base, path)
			dir, file := ppath.Split(childFull)
			dir = strings.TrimSuffix(dir, "/")
			if dir == "" {
				dir = "."
			}
			if err := parseFile(sess, dir, file); err != nil {
				return err
			}
			continue
		}

		if idx := strings.Index(trimmed, "+="); idx >= 0 {
			keyPart := strings.TrimSpace(trimmed[:idx])
			valuePart := strings.TrimSpace(trimmed[idx+2:])
			keyBase, cond2, hasCond2, serr := splitCondSuffix(keyPart, p)
			if serr != nil {
				return serr
			}
			key := VarKey(keyBase)
			if !directiveKeys[key] {
				return newSyntaxError(p, "unrecognized directive %q", keyPart)
			}
			if hasCond2 {
				ok, err := evaluateKeyDepend(cond2, decl, p)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			if err := applyDirective(sess, &sess.Lists, key, base, valuePart, p); err != nil {
				return err
			}
			continue
		}

		toks := tokenize(trimmed)
		if len(toks) != 1 {
			return newSyntaxError(p, "unrecognized line %q", trimmed)
		}
		name := toks[0]
		if name == "include" || directiveKeys[VarKey(name)] {
			return newSyntaxError(p, "%q cannot be used as a symbol name", name)
		}
		cur = decl.Insert(name)
		cur.Pos = p
	}

	if cur != nil {
		if err := ResolveSymbol(cur, decl, sess.Overrides); err != nil {
			return err
		}
	}
	return nil
}

func readAllLines(rc io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// splitCondSuffix splits a "KEY-$(COND)" token into its base and the
// condition expression, per spec.md §4.5's key-string dependency suffix.
func splitCondSuffix(tok string, p pos) (base, cond string, hasCond bool, err error) {
	idx := strings.Index(tok, "-$(")
	if idx < 0 {
		return tok, "", false, nil
	}
	if !strings.HasSuffix(tok, ")") {
		return "", "", false, newSyntaxError(p, "unterminated condition suffix in %q", tok)
	}
	return tok[:idx], tok[idx+3 : len(tok)-1], true, nil
}

// evaluateKeyDepend evaluates a key-string dependency condition: bare
// "MACRO" is truthy iff MACRO resolved to a non-null, non-disabled,
// non-blank value; "MACRO==VALUE" is truthy iff they're equal.
func evaluateKeyDepend(cond string, decl *SymbolTable, p pos) (bool, error) {
	if idx := strings.Index(cond, "=="); idx >= 0 {
		name := cond[:idx]
		val := cond[idx+2:]
		sym, ok := decl.Find(name)
		if !ok {
			return false, newUndefinedSymbolError(p, name)
		}
		return sym.Value == val, nil
	}
	sym, ok := decl.Find(cond)
	if !ok {
		return false, newUndefinedSymbolError(p, cond)
	}
	return sym.hasValue(), nil
}

// parseIncludeLine recognizes "include[-$(COND)] \"path\"". isInclude is
// false (with no error) when trimmed isn't this form at all, letting the
// caller fall through to directive/symbol-block parsing.
func parseIncludeLine(trimmed string, p pos) (path, cond string, hasCond, isInclude bool, err error) {
	keyword := trimmed
	rest := ""
	if sp := strings.IndexAny(trimmed, " \t"); sp >= 0 {
		keyword = trimmed[:sp]
		rest = strings.TrimSpace(trimmed[sp+1:])
	}
	base, cond, hasCond, serr := splitCondSuffix(keyword, p)
	if serr != nil {
		return "", "", false, false, serr
	}
	if base != "include" {
		return "", "", false, false, nil
	}
	q, ok := extractDoubleQuoted(rest)
	if !ok {
		return "", "", false, true, newSyntaxError(p, "include: missing or unterminated quoted path")
	}
	if strings.TrimSpace(rest) != `"`+q+`"` {
		return "", "", false, true, newSyntaxError(p, "include: unexpected trailing content after path")
	}
	return q, cond, hasCond, true, nil
}

// applyAttribute dispatches one of the three accepted symbol-block
// attribute forms (spec.md §4.5).
func applyAttribute(cur *Symbol, attrLine string, p pos) error {
	idx := strings.IndexByte(attrLine, '=')
	if idx < 0 {
		return newSyntaxError(p, "malformed attribute %q", attrLine)
	}
	key := strings.TrimSpace(attrLine[:idx])
	val := strings.TrimSpace(attrLine[idx+1:])
	switch key {
	case "choices":
		return parseChoices(cur, val, p)
	case "default":
		return parseDefault(cur, val, p)
	case "depends":
		cur.Depends = val
		return nil
	default:
		return newSyntaxError(p, "unknown attribute %q", key)
	}
}

// parseChoices handles both the "[min, max]" range form and the
// comma-separated string-literal-sequence form.
func parseChoices(cur *Symbol, val string, p pos) error {
	if strings.HasPrefix(val, "[") {
		if !strings.HasSuffix(val, "]") {
			return newSyntaxError(p, "malformed range %q", val)
		}
		inner := val[1 : len(val)-1]
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return newSyntaxError(p, "range requires two comma-separated numbers: %q", val)
		}
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return newSyntaxError(p, "invalid range bounds %q", val)
		}
		cur.Type = Number
		cur.Range = [2]float64{lo, hi}
		cur.Choices = []string{formatNumber(lo), formatNumber(hi)}
		return nil
	}
	entries, err := splitChoiceEntries(val, p)
	if err != nil {
		return err
	}
	cur.Type = String
	cur.Choices = entries
	return nil
}

// splitChoiceEntries splits a comma-separated choices spec, honoring bare
// tokens, single/double-quoted literals, and brace-delimited groups.
func splitChoiceEntries(s string, p pos) ([]string, error) {
	var entries []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		var entry string
		switch s[i] {
		case '"', '\'':
			q := s[i]
			i++
			start := i
			for i < len(s) && s[i] != q {
				i++
			}
			if i >= len(s) {
				return nil, newSyntaxError(p, "unterminated quote in choices %q", s)
			}
			entry = s[start:i]
			i++
		case '{':
			i++
			start := i
			depth := 1
			for i < len(s) && depth > 0 {
				switch s[i] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto closed
					}
				}
				i++
			}
		closed:
			if depth != 0 {
				return nil, newSyntaxError(p, "unterminated brace in choices %q", s)
			}
			entry = s[start:i]
			i++
		default:
			start := i
			for i < len(s) && s[i] != ',' {
				i++
			}
			entry = strings.TrimSpace(s[start:i])
		}
		entries = append(entries, entry)
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i < len(s) {
			if s[i] != ',' {
				return nil, newSyntaxError(p, "expected ',' in choices %q", s)
			}
			i++
		}
	}
	return entries, nil
}

// parseDefault validates the default literal against the already-declared
// choices/range, per spec.md §4.5's "validated immediately" rule. Declaring
// choices after default is rejected: real lm.cfg files always state choices
// first, and validating a default with nothing to validate against would
// silently accept anything.
func parseDefault(cur *Symbol, val string, p pos) error {
	if len(cur.Choices) == 0 {
		return newSyntaxError(p, "%s: default specified before choices", cur.Name)
	}
	if cur.isNumber() {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return newSyntaxError(p, "%s: invalid numeric default %q", cur.Name, val)
		}
		if f < cur.Range[0] || f > cur.Range[1] {
			r := cur.Range
			return newInvalidValueError(p, cur.Name, val, "invalid default value", nil, &r)
		}
		cur.DefaultPresent = true
		cur.DefaultNum = f
		return nil
	}
	lit := stripOuterQuotes(val)
	if !containsString(cur.Choices, lit) {
		return newInvalidValueError(p, cur.Name, lit, "invalid default value", cur.Choices, nil)
	}
	cur.DefaultPresent = true
	cur.DefaultStr = lit
	return nil
}

func stripOuterQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func containsString(list []string, v string) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}

// applyDirective expands one build-variable directive's right-hand side
// per key, per spec.md §4.5's per-token transform table, and appends the
// results to lists.
func applyDirective(sess *Session, lists *VarLists, key VarKey, base, valuePart string, p pos) error {
	list := lists.listFor(key)
	switch key {
	case KeySRC:
		for _, t := range tokenize(valuePart) {
			names, err := expandSRCToken(sess, base, t, p)
			if err != nil {
				return err
			}
			*list = append(*list, names...)
		}
	case KeyPATH:
		for _, t := range tokenize(valuePart) {
			*list = append(*list, expandPATHToken(sess, base, t))
		}
	case KeyDEFINE:
		for _, t := range tokenize(valuePart) {
			*list = append(*list, "-D"+t)
		}
	case KeyASM, KeyLDS:
		for _, t := range tokenize(valuePart) {
			*list = append(*list, sess.JoinPath(base, t))
		}
	case KeyMCFLAG, KeyASFLAG, KeyCFLAG, KeyCPPFLAG, KeyLDFLAG:
		*list = append(*list, valuePart)
	case KeyLIB:
		for _, t := range tokenize(valuePart) {
			*list = append(*list, "-l"+t)
		}
	case KeyLIBPATH:
		for _, t := range tokenize(valuePart) {
			*list = append(*list, "-L"+sess.JoinPath(base, t))
		}
	}
	return nil
}

// expandSRCToken handles the SRC key's wildcard rule: a "*.c" or
// "dir/*.c" token is expanded by globbing, each match prefixed with its
// directory; any other token is base-joined as-is. A token carrying any
// other wildcard ("*.cpp", "sub/*.h", "**.c", ...) is rejected outright
// rather than silently accepted as a literal path.
func expandSRCToken(sess *Session, base, token string, p pos) ([]string, error) {
	if !strings.Contains(token, "*") {
		return []string{sess.JoinPath(base, token)}, nil
	}
	if token != "*.c" && !strings.HasSuffix(token, "/*.c") {
		return nil, newSyntaxError(p, "unsupported wildcard in SRC token %q", token)
	}
	dirPart := strings.TrimSuffix(strings.TrimSuffix(token, "*.c"), "/")
	if strings.Contains(dirPart, "*") {
		return nil, newSyntaxError(p, "unsupported wildcard in SRC token %q", token)
	}
	globDir := base
	if dirPart != "" {
		globDir = sess.JoinPath(base, dirPart)
	}
	matches, err := sess.Glob(globDir, "*.c")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m
		if dirPart != "" {
			name = dirPart + "/" + m
		}
		out = append(out, sess.JoinPath(base, name))
	}
	return out, nil
}

// expandPATHToken handles the PATH key's "-I" prefix, with "." / "./"
// shorthand for the current base directory.
func expandPATHToken(sess *Session, base, token string) string {
	if token == "." || token == "./" {
		if base == "." || base == "" {
			return "-I."
		}
		return "-I" + base
	}
	return "-I" + sess.JoinPath(base, token)
}
