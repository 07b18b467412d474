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
	"context"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// OverwritePolicy decides what happens when a copy destination already
// exists.
type OverwritePolicy int

const (
	// OverwriteAsk prompts per conflicting file.
	OverwriteAsk OverwritePolicy = iota
	// OverwriteAlways replaces without asking.
	OverwriteAlways
	// OverwriteNever fails on a conflict.
	OverwriteNever
)

// CopyOptions configures CopyEntry.
type CopyOptions struct {
	// Policy is the recursive confirmation policy for directories.
	Policy Policy
	// Overwrite decides conflicts with existing destination files.
	Overwrite OverwritePolicy
	// PreserveTimes carries the source modification time over to the
	// destination.
	PreserveTimes bool
}

// CopyEntry copies from to the destination path to. Directories (but not
// symbolic links to directories) are copied recursively under the same
// tri-state confirmation semantics as delete, with their own prompts.
func (e *Engine) CopyEntry(ctx context.Context, from, to string, opts CopyOptions) error {
	return e.copyEntry(ctx, from, to, opts, true)
}

func (e *Engine) copyEntry(ctx context.Context, from, to string, opts CopyOptions, top bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Lstat(from)
	if err != nil {
		return errors.Errorf("stat %s: %w", from, err)
	}

	if !info.IsDir() {
		return e.copyLeaf(from, to, info, opts)
	}

	switch opts.Policy {
	case PolicyDisabled:
		return errors.Errorf("%s is a directory (recursive copy disabled)", from)
	case PolicyAlways:
	case PolicyAskTop:
		if top && !e.prompter.ConfirmRecursiveCopy(from) {
			return errors.Errorf("%s is a directory: %w", from, ErrDeclined)
		}
	case PolicyAskEach:
		if !e.prompter.ConfirmRecursiveCopy(from) {
			return errors.Errorf("%s is a directory: %w", from, ErrDeclined)
		}
	default:
		return errors.Errorf("unknown recursive policy %d", opts.Policy)
	}

	return e.copyDir(ctx, from, to, info, opts)
}

func (e *Engine) copyDir(ctx context.Context, from, to string, info os.FileInfo, opts CopyOptions) error {
	destInfo, err := os.Lstat(to)
	switch {
	case err == nil && destInfo.IsDir():
		// reuse the existing directory
	case err == nil:
		if err := e.resolveConflict(to, opts); err != nil {
			return err
		}
		if err := os.Mkdir(to, info.Mode().Perm()); err != nil {
			return errors.Errorf("creating directory %s: %w", to, err)
		}
	case os.IsNotExist(err):
		if err := os.Mkdir(to, info.Mode().Perm()); err != nil {
			return errors.Errorf("creating directory %s: %w", to, err)
		}
	default:
		return errors.Errorf("stat %s: %w", to, err)
	}

	entries, err := os.ReadDir(from)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", from, err)
	}
	for _, entry := range entries {
		if err := e.copyEntry(ctx,
			filepath.Join(from, entry.Name()),
			filepath.Join(to, entry.Name()),
			opts, false); err != nil {
			return err
		}
	}

	if opts.PreserveTimes {
		if err := os.Chtimes(to, info.ModTime(), info.ModTime()); err != nil {
			return errors.Errorf("preserving times of %s: %w", to, err)
		}
	}
	return nil
}

// copyLeaf copies one file or symbolic link, resolving any conflict with
// an existing destination first.
func (e *Engine) copyLeaf(from, to string, info os.FileInfo, opts CopyOptions) error {
	if _, err := os.Lstat(to); err == nil {
		if err := e.resolveConflict(to, opts); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return errors.Errorf("stat %s: %w", to, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(from)
		if err != nil {
			return errors.Errorf("reading link %s: %w", from, err)
		}
		if err := os.Symlink(target, to); err != nil {
			return errors.Errorf("creating link %s: %w", to, err)
		}
		return nil
	}

	src, err := os.Open(from)
	if err != nil {
		return errors.Errorf("opening %s: %w", from, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", to, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Errorf("copying %s to %s: %w", from, to, err)
	}
	if err := dst.Close(); err != nil {
		return errors.Errorf("closing %s: %w", to, err)
	}

	if opts.PreserveTimes {
		if err := os.Chtimes(to, info.ModTime(), info.ModTime()); err != nil {
			return errors.Errorf("preserving times of %s: %w", to, err)
		}
	}
	return nil
}

// resolveConflict is called when the destination exists. It removes the
// destination if the overwrite policy (or the user) allows it.
func (e *Engine) resolveConflict(to string, opts CopyOptions) error {
	switch opts.Overwrite {
	case OverwriteAlways:
	case OverwriteNever:
		return errors.Errorf("%s already exists", to)
	case OverwriteAsk:
		if !e.prompter.ConfirmOverwrite(to) {
			return errors.Errorf("%s already exists: %w", to, ErrDeclined)
		}
	default:
		return errors.Errorf("unknown overwrite policy %d", opts.Overwrite)
	}
	if err := os.Remove(to); err != nil {
		return errors.Errorf("replacing %s: %w", to, err)
	}
	return nil
}
