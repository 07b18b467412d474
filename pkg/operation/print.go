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

// Print sends the files to the printer, one blocking command per file,
// resolved against the print table.
func (o *Operator) Print(ctx context.Context, files []string) error {
	return o.runPerFile(ctx, "print", o.opts.Tables.Print, files, execute.Discard())
}

// CompactPrint is Print with the compact-print table.
func (o *Operator) CompactPrint(ctx context.Context, files []string) error {
	return o.runPerFile(ctx, "compact-print", o.opts.Tables.CompactPrint, files, execute.Discard())
}
