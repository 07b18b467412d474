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

package operation

import (
	"context"

	"github.com/walteh/filecmd/pkg/archive"
	"github.com/walteh/filecmd/pkg/config"
	"github.com/walteh/filecmd/pkg/execute"
	"github.com/walteh/filecmd/pkg/fsops"
	"github.com/walteh/filecmd/pkg/rules"
	"github.com/walteh/filecmd/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownFileType means no rule matched the file name. Single
	// file callers raise it; batch callers log and skip the entry.
	ErrUnknownFileType = errors.New("unknown file type")
	// ErrUserDeclined means the user refused a required confirmation.
	ErrUserDeclined = errors.New("declined by user")
	// ErrTargetConflict means multiple sources were selected but the
	// destination is neither a directory nor a valid archive target.
	ErrTargetConflict = errors.New("destination is not a directory")
)

// Prompter covers the operation-level confirmations: the delete listing
// and the editable extract command.
type Prompter interface {
	// ConfirmDelete presents the listing of entries about to be
	// deleted.
	ConfirmDelete(paths []string) bool
	// EditCommand presents a command line for editing; false means the
	// user aborted.
	EditCommand(initial string) (string, bool)
}

// 🔧 Options contains the collaborators of the operator.
type Options struct {
	// Tables are the compiled rule tables.
	Tables *config.Tables
	// Executor runs the resolved commands.
	Executor *execute.Executor
	// Engine performs recursive delete and copy.
	Engine *fsops.Engine
	// Archive resolves copy destinations that are archives.
	Archive *archive.Resolver
	// Reporter is the user-facing line log.
	Reporter *status.Reporter
	// Prompter asks the operation-level confirmations.
	Prompter Prompter

	// DeletePolicy and CopyPolicy are the process-wide recursion
	// defaults; promotion state never outlives one call.
	DeletePolicy fsops.Policy
	CopyPolicy   fsops.Policy
	// Overwrite decides copy conflicts.
	Overwrite fsops.OverwritePolicy
	// PreserveTimes carries modification times over on copy.
	PreserveTimes bool
}

// 🎮 Operator implements the caller-facing operations of the dispatcher.
// The host file-list UI hands it the marked files; it never reads
// selection state itself.
type Operator struct {
	opts Options
}

// 🏭 New creates a new operator with the given options.
func New(opts Options) (*Operator, error) {
	if opts.Tables == nil {
		return nil, errors.New("tables are required")
	}
	if opts.Executor == nil {
		return nil, errors.New("executor is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Archive == nil {
		return nil, errors.New("archive resolver is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}
	return &Operator{opts: opts}, nil
}

// resolveSpec resolves name against table, mapping a missing rule to the
// user-facing "don't know how to" error.
func resolveSpec(table *rules.Table, opName, name string) (rules.Spec, error) {
	spec, err := table.Resolve(name)
	if errors.Is(err, rules.ErrNoRule) {
		return nil, errors.Errorf("don't know how to %s %s: %w", opName, name, ErrUnknownFileType)
	}
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// runPerFile is the shared batch loop: resolve and run one blocking
// command per file. With a single file the first error propagates; with
// several, failures are logged and the batch always completes a full
// pass, ending with a summary line.
func (o *Operator) runPerFile(ctx context.Context, opName string, table *rules.Table, files []string, sink execute.OutputSink) error {
	if len(files) == 0 {
		return errors.Errorf("no files to %s", opName)
	}

	single := len(files) == 1
	succeeded := 0
	for _, file := range files {
		spec, err := resolveSpec(table, opName, file)
		if err != nil {
			if single {
				return err
			}
			o.opts.Reporter.FailureLine(err.Error(), file)
			continue
		}

		if _, err := o.opts.Executor.Execute(ctx, execute.Request{
			OpName:  opName,
			Spec:    spec,
			Sources: []string{file},
			Wait:    execute.Blocking,
			Sink:    sink,
		}); err != nil {
			if single {
				return err
			}
			o.opts.Reporter.FailureLine(err.Error(), file)
			continue
		}
		succeeded++
	}

	if !single {
		o.opts.Reporter.Summary(opName, succeeded, len(files))
	}
	return nil
}
