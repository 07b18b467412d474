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

	"github.com/walteh/filecmd/pkg/execute"
	"github.com/walteh/filecmd/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// Extract resolves one file against the extract table and presents the
// resulting command line for editing before running it through the
// command shell. Callback rules have no command line and run directly.
func (o *Operator) Extract(ctx context.Context, file string) error {
	spec, err := resolveSpec(o.opts.Tables.Extract, "extract", file)
	if err != nil {
		return err
	}

	if _, ok := spec.(rules.Callback); ok {
		_, err = o.opts.Executor.Execute(ctx, execute.Request{
			OpName:  "extract",
			Spec:    spec,
			Sources: []string{file},
			Wait:    execute.Blocking,
			Sink:    execute.Discard(),
		})
		return err
	}

	initial, err := o.opts.Executor.Preview(spec, []string{file}, "")
	if err != nil {
		return err
	}
	line, ok := o.opts.Prompter.EditCommand(initial)
	if !ok {
		return errors.Errorf("extract %s: %w", file, ErrUserDeclined)
	}

	_, err = o.opts.Executor.RunShell(ctx, "extract", line, execute.Blocking, execute.Discard())
	return err
}
