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

// View opens one file with the program the view table selects. The
// default catch-all rule opens it with the pager. Views always run
// asynchronously: the viewer keeps running while control returns.
func (o *Operator) View(ctx context.Context, file string) error {
	spec, err := resolveSpec(o.opts.Tables.View, "view", file)
	if err != nil {
		return err
	}
	_, err = o.opts.Executor.Execute(ctx, execute.Request{
		OpName:  "view",
		Spec:    spec,
		Sources: []string{file},
		Wait:    execute.Async,
		Sink:    execute.Discard(),
	})
	return err
}
