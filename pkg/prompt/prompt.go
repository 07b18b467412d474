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

// Package prompt implements the user confirmations the engines require:
// interactively on a terminal, or with fixed answers for --yes runs and
// tests.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Interactive asks on the terminal via pterm.
type Interactive struct{}

// NewInteractive creates an interactive prompter.
func NewInteractive() *Interactive {
	return &Interactive{}
}

func (p *Interactive) confirm(msg string) bool {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultText(msg).Show()
	if err != nil {
		return false
	}
	return ok
}

// ConfirmRecursiveDelete asks before recursively deleting a directory.
func (p *Interactive) ConfirmRecursiveDelete(path string) bool {
	return p.confirm(fmt.Sprintf("Recursively delete %s?", path))
}

// ConfirmRecursiveCopy asks before recursively copying a directory.
func (p *Interactive) ConfirmRecursiveCopy(path string) bool {
	return p.confirm(fmt.Sprintf("Recursively copy %s?", path))
}

// ConfirmOverwrite asks before replacing an existing file.
func (p *Interactive) ConfirmOverwrite(path string) bool {
	return p.confirm(fmt.Sprintf("Overwrite %s?", path))
}

// ConfirmCreateArchive asks before creating a new archive.
func (p *Interactive) ConfirmCreateArchive(path string) bool {
	return p.confirm(fmt.Sprintf("Create archive %s?", path))
}

// ConfirmAppendArchive asks before appending to an existing archive.
func (p *Interactive) ConfirmAppendArchive(path string) bool {
	return p.confirm(fmt.Sprintf("Append to existing archive %s?", path))
}

// ConfirmOverwriteArchive asks whether an existing archive may be
// replaced after an append was refused.
func (p *Interactive) ConfirmOverwriteArchive(path string) bool {
	return p.confirm(fmt.Sprintf("Replace existing archive %s?", path))
}

// ConfirmDelete shows the listing of entries about to be deleted.
func (p *Interactive) ConfirmDelete(paths []string) bool {
	pterm.DefaultParagraph.Println("About to delete:")
	for _, path := range paths {
		pterm.Println("  " + path)
	}
	return p.confirm(fmt.Sprintf("Delete %d entries?", len(paths)))
}

// EditCommand presents a command line the user may edit before it runs.
// The second return is false when the user aborted.
func (p *Interactive) EditCommand(initial string) (string, bool) {
	line, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(initial).
		Show("Command")
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// Auto answers every confirmation with a fixed answer and runs commands
// unedited. It backs the --yes flag.
type Auto struct {
	Answer bool
}

// NewAuto creates an Auto prompter with the given fixed answer.
func NewAuto(answer bool) *Auto {
	return &Auto{Answer: answer}
}

func (p *Auto) ConfirmRecursiveDelete(string) bool  { return p.Answer }
func (p *Auto) ConfirmRecursiveCopy(string) bool    { return p.Answer }
func (p *Auto) ConfirmOverwrite(string) bool        { return p.Answer }
func (p *Auto) ConfirmCreateArchive(string) bool    { return p.Answer }
func (p *Auto) ConfirmAppendArchive(string) bool    { return p.Answer }
func (p *Auto) ConfirmOverwriteArchive(string) bool { return p.Answer }
func (p *Auto) ConfirmDelete([]string) bool         { return p.Answer }

// EditCommand returns the command unchanged.
func (p *Auto) EditCommand(initial string) (string, bool) {
	return initial, p.Answer
}
