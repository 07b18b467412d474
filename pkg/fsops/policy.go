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

// Package fsops implements recursive delete and copy over whole subtrees,
// driven by a confirmation policy. The "promote to always" state of the
// AskTop policy lives in local variables of one top-level call and never
// leaks into the next operation.
package fsops

import (
	"gitlab.com/tozd/go/errors"
)

// Policy controls whether and when directory recursion requires user
// confirmation.
type Policy int

const (
	// PolicyDisabled never recurses; deleting or copying a non-empty
	// directory fails with the plain primitive's error.
	PolicyDisabled Policy = iota
	// PolicyAlways recurses without asking.
	PolicyAlways
	// PolicyAskTop asks once at the top of each directory tree, then
	// behaves like PolicyAlways for that tree's descendants.
	PolicyAskTop
	// PolicyAskEach asks before descending into every directory, at
	// every depth.
	PolicyAskEach
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyDisabled:
		return "disabled"
	case PolicyAlways:
		return "always"
	case PolicyAskTop:
		return "ask-top"
	case PolicyAskEach:
		return "ask-each"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "disabled", "":
		return PolicyDisabled, nil
	case "always":
		return PolicyAlways, nil
	case "ask-top", "top":
		return PolicyAskTop, nil
	case "ask-each", "each":
		return PolicyAskEach, nil
	default:
		return PolicyDisabled, errors.Errorf("unknown recursive policy %q", s)
	}
}
