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
	"os"
	"path/filepath"

	"github.com/walteh/filecmd/pkg/archive"
	"github.com/walteh/filecmd/pkg/execute"
	"github.com/walteh/filecmd/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// Copy copies the marked files to dest. The destination is resolved
// once per batch: an archive target routes the whole batch through a
// single archiver invocation; a directory gets one recursive copy per
// file; anything else is only valid for a single source.
func (o *Operator) Copy(ctx context.Context, files []string, dest string) error {
	if len(files) == 0 {
		return errors.New("no files to copy")
	}

	decision, err := o.opts.Archive.ResolveCopyTarget(ctx, dest)
	if errors.Is(err, archive.ErrDeclined) {
		return errors.Errorf("copy to %s: %w", dest, ErrUserDeclined)
	}
	if err != nil {
		return err
	}

	switch decision.Kind {
	case archive.KindNewArchive, archive.KindAppendArchive, archive.KindRemoveThenAppend:
		return o.copyToArchive(ctx, files, dest, decision)
	case archive.KindDirectory:
		return o.copyToDirectory(ctx, files, dest)
	case archive.KindNotADestination:
		if len(files) > 1 {
			return errors.Errorf("copying %d files to %s: %w", len(files), dest, ErrTargetConflict)
		}
		return o.opts.Engine.CopyEntry(ctx, files[0], dest, o.copyOptions())
	default:
		return errors.Errorf("unhandled copy decision %s", decision.Kind)
	}
}

// copyToArchive hands the entire batch to the external archiver in one
// invocation. Independent batches aimed at the same archive are
// serialized.
func (o *Operator) copyToArchive(ctx context.Context, files []string, dest string, decision archive.Decision) error {
	return o.opts.Archive.RunBatch(ctx, dest, func() error {
		if decision.Kind == archive.KindRemoveThenAppend {
			// No create command exists for this format: delete the
			// old target and let append synthesize a fresh archive.
			if err := os.Remove(dest); err != nil {
				return errors.Errorf("removing %s: %w", dest, err)
			}
		}

		_, err := o.opts.Executor.Execute(ctx, execute.Request{
			OpName:  "copy to archive",
			Spec:    decision.Spec,
			Sources: files,
			Dest:    dest,
			Wait:    execute.Blocking,
			Sink:    execute.Discard(),
		})
		return err
	})
}

func (o *Operator) copyToDirectory(ctx context.Context, files []string, dest string) error {
	single := len(files) == 1
	opts := o.copyOptions()

	succeeded := 0
	for _, file := range files {
		target := joinBase(dest, file)
		if err := o.opts.Engine.CopyEntry(ctx, file, target, opts); err != nil {
			if single {
				return err
			}
			o.opts.Reporter.FailureLine("copy failed", file)
			continue
		}
		succeeded++
	}

	if !single {
		o.opts.Reporter.Summary("copy", succeeded, len(files))
	}
	return nil
}

// joinBase places file under dir by its base name.
func joinBase(dir, file string) string {
	return filepath.Join(dir, filepath.Base(file))
}

func (o *Operator) copyOptions() fsops.CopyOptions {
	return fsops.CopyOptions{
		Policy:        o.opts.CopyPolicy,
		Overwrite:     o.opts.Overwrite,
		PreserveTimes: o.opts.PreserveTimes,
	}
}
