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
)

// DefaultListSurface is the output surface ListArchive writes to when the
// caller does not name one.
const DefaultListSurface = "archive-list"

// ListArchive lists the contents of one archive into the named output
// surface and returns them. The surface keeps the listing around for the
// host UI until the next command writes to it.
func (o *Operator) ListArchive(ctx context.Context, file, surface string) (string, error) {
	if surface == "" {
		surface = DefaultListSurface
	}

	spec, err := resolveSpec(o.opts.Tables.List, "list", file)
	if err != nil {
		return "", err
	}

	if _, err := o.opts.Executor.Execute(ctx, execute.Request{
		OpName:  "list",
		Spec:    spec,
		Sources: []string{file},
		Wait:    execute.Blocking,
		Sink:    execute.NamedBuffer(surface),
	}); err != nil {
		// The captured output is still useful for diagnosing the
		// failed archiver run.
		return o.opts.Executor.Surfaces().Contents(surface), err
	}

	return o.opts.Executor.Surfaces().Contents(surface), nil
}
