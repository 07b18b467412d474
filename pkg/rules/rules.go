// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rules implements the ordered pattern tables that map file names
// to command specifications. Tables are evaluated strictly top to bottom
// and the first matching rule wins, so a catch-all pattern must always be
// declared last.
package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ErrNoRule is returned by Resolve when no pattern in the table matches.
var ErrNoRule = errors.New("no matching rule")

// 🎯 Pattern matches a candidate file name. The default syntax is a Go
// regular expression; a "glob:" prefix switches to doublestar glob syntax.
type Pattern struct {
	raw  string
	re   *regexp.Regexp
	glob string
}

// CompilePattern compiles a pattern string. Patterns are compiled once at
// table load time, never per lookup.
func CompilePattern(s string) (*Pattern, error) {
	if glob, ok := strings.CutPrefix(s, "glob:"); ok {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Errorf("invalid glob pattern %q", s)
		}
		return &Pattern{raw: s, glob: glob}, nil
	}
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", s, err)
	}
	return &Pattern{raw: s, re: re}, nil
}

// MustPattern is CompilePattern for statically known patterns.
func MustPattern(s string) *Pattern {
	p, err := CompilePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the pattern matches name. Regular expressions are
// unanchored; globs are tried against the full name and its base name.
func (p *Pattern) Match(name string) bool {
	if p.re != nil {
		return p.re.MatchString(name)
	}
	if ok, _ := doublestar.Match(p.glob, name); ok {
		return true
	}
	ok, _ := doublestar.Match(p.glob, filepath.Base(name))
	return ok
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.raw
}

// CallbackFunc performs an action directly in process, without spawning a
// subprocess. It receives the absolute and the relative path of the file.
type CallbackFunc func(abs, rel string) error

// Spec is a command specification: exactly one of Callback, Template or
// Argv. The executor switches over the three cases exhaustively.
type Spec interface {
	spec()
}

// Callback names a built-in function that performs the action itself.
type Callback struct {
	Name string
	Fn   CallbackFunc
}

// Template is a format string with up to two %s placeholders (sources,
// then destination) that is handed to the command shell after literal
// substitution.
type Template string

// Argv is a literal program name plus fixed flags. The destination and
// the source files are appended as trailing positional arguments.
type Argv []string

func (Callback) spec() {}
func (Template) spec() {}
func (Argv) spec()     {}

// Rule pairs a pattern with the command spec it selects.
type Rule struct {
	Pattern *Pattern
	Spec    Spec
}

// Table is an ordered rule table. The order is a load-bearing contract:
// entries are never reordered.
type Table struct {
	name  string
	rules []Rule
}

// NewTable creates a table with the given rules, evaluated in order.
func NewTable(name string, rules ...Rule) *Table {
	return &Table{name: name, rules: rules}
}

// Name returns the table name, used in user-facing messages.
func (t *Table) Name() string {
	return t.name
}

// Prepend returns a new table with the given rules evaluated before the
// existing ones. User configuration is layered over the defaults this way
// so a user rule can shadow a built-in one.
func (t *Table) Prepend(rules ...Rule) *Table {
	merged := make([]Rule, 0, len(rules)+len(t.rules))
	merged = append(merged, rules...)
	merged = append(merged, t.rules...)
	return &Table{name: t.name, rules: merged}
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Resolve returns the command spec of the first rule matching name, after
// stripping any backup/version suffix, or ErrNoRule.
func (t *Table) Resolve(name string) (Spec, error) {
	stripped := StripVersionSuffix(name)
	for _, r := range t.rules {
		if r.Pattern.Match(stripped) {
			return r.Spec, nil
		}
	}
	return nil, errors.Errorf("%s table: %q: %w", t.name, name, ErrNoRule)
}

var versionSuffixRE = regexp.MustCompile(`\.~[0-9]+~$`)

// StripVersionSuffix removes trailing backup and version suffixes from a
// file name, so that "foo.tar.~3~" and "foo.tar~" resolve like "foo.tar".
func StripVersionSuffix(name string) string {
	for {
		switch {
		case versionSuffixRE.MatchString(name):
			name = versionSuffixRE.ReplaceAllString(name, "")
		case strings.HasSuffix(name, "~") && len(name) > 1:
			name = strings.TrimSuffix(name, "~")
		default:
			return name
		}
	}
}
