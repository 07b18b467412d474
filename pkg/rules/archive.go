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

package rules

import (
	"gitlab.com/tozd/go/errors"
)

// ArchiveRule is a rule-table entry for copy destinations that are
// archives rather than directories. It carries two command specs: one to
// append to an existing archive and one to create a new one. Either may
// be nil, but not both.
type ArchiveRule struct {
	Pattern *Pattern
	Append  Spec
	Create  Spec
}

// ArchiveTable is an ordered table of archive rules, first match wins.
type ArchiveTable struct {
	rules []ArchiveRule
}

// NewArchiveTable creates an archive table, validating that every rule
// carries at least one command spec.
func NewArchiveTable(rules ...ArchiveRule) (*ArchiveTable, error) {
	for _, r := range rules {
		if r.Append == nil && r.Create == nil {
			return nil, errors.Errorf("archive rule %q has neither append nor create command", r.Pattern)
		}
	}
	return &ArchiveTable{rules: rules}, nil
}

// Prepend returns a new table with the given rules evaluated first.
func (t *ArchiveTable) Prepend(rules ...ArchiveRule) (*ArchiveTable, error) {
	merged := make([]ArchiveRule, 0, len(rules)+len(t.rules))
	merged = append(merged, rules...)
	merged = append(merged, t.rules...)
	return NewArchiveTable(merged...)
}

// Resolve returns the first archive rule matching name, after stripping
// any backup/version suffix, or ErrNoRule.
func (t *ArchiveTable) Resolve(name string) (*ArchiveRule, error) {
	stripped := StripVersionSuffix(name)
	for i := range t.rules {
		if t.rules[i].Pattern.Match(stripped) {
			return &t.rules[i], nil
		}
	}
	return nil, errors.Errorf("archive table: %q: %w", name, ErrNoRule)
}
