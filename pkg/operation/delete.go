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

	"gitlab.com/tozd/go/errors"
)

// Delete presents the confirmation listing and then deletes the marked
// entries under the configured recursion policy. Per-entry failures are
// logged and the batch always completes; only a declined confirmation
// aborts the whole operation with nothing done.
func (o *Operator) Delete(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return errors.New("no files to delete")
	}
	if !o.opts.Prompter.ConfirmDelete(files) {
		return errors.Errorf("delete: %w", ErrUserDeclined)
	}

	rep := o.opts.Engine.DeleteMany(ctx, files, o.opts.DeletePolicy)
	o.opts.Reporter.Summary("delete", rep.Succeeded, rep.Total)

	if rep.Total == 1 && rep.Failed() == 1 {
		return rep.Failures[0].Err
	}
	return nil
}
