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

package fsops

import (
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filecmd/pkg/status"
)

// ErrDeclined is returned when the user refuses a required confirmation.
var ErrDeclined = errors.New("declined by user")

// Prompter asks the user for the confirmations the recursive engine
// needs. The interactive implementation lives in pkg/prompt; tests use a
// scripted one.
type Prompter interface {
	// ConfirmRecursiveDelete asks before recursively deleting path.
	ConfirmRecursiveDelete(path string) bool
	// ConfirmRecursiveCopy asks before recursively copying path.
	ConfirmRecursiveCopy(path string) bool
	// ConfirmOverwrite asks before replacing an existing file at path.
	ConfirmOverwrite(path string) bool
}

// Engine implements subtree delete and copy on top of the single-entry
// primitives.
type Engine struct {
	prompter Prompter
	reporter *status.Reporter
}

// New creates an engine. The reporter may be nil to suppress per-entry
// failure lines.
func New(prompter Prompter, reporter *status.Reporter) *Engine {
	return &Engine{prompter: prompter, reporter: reporter}
}

func (e *Engine) failureLine(reason, path string) {
	if e.reporter != nil {
		e.reporter.FailureLine(reason, path)
	}
}

// Failure records one failed leaf operation within a batch.
type Failure struct {
	Path string
	Err  error
}

// Report aggregates the outcome of a batch operation.
type Report struct {
	Total     int
	Succeeded int
	Failures  []Failure
}

// Failed returns the number of failed entries.
func (r Report) Failed() int {
	return len(r.Failures)
}
