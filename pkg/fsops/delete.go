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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DeleteEntry deletes one entry under the given policy. A directory is
// recursed into according to the policy; when recursion is disabled or
// declined, the plain primitive runs and fails on a non-empty directory.
// That failure is expected and surfaced, not masked.
func (e *Engine) DeleteEntry(ctx context.Context, path string, policy Policy) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return errors.Errorf("deleting %s: %w", path, err)
		}
		return nil
	}

	switch policy {
	case PolicyDisabled:
		if err := os.Remove(path); err != nil {
			return errors.Errorf("deleting directory %s: %w", path, err)
		}
		return nil
	case PolicyAlways:
		return e.deleteTree(ctx, path)
	case PolicyAskTop:
		// The promotion to "always" is this call frame's decision; it
		// does not survive past the return.
		if e.prompter.ConfirmRecursiveDelete(path) {
			return e.deleteTree(ctx, path)
		}
		if err := os.Remove(path); err != nil {
			return errors.Errorf("deleting directory %s: %w", path, err)
		}
		return nil
	case PolicyAskEach:
		return e.deleteAskEach(ctx, path)
	default:
		return errors.Errorf("unknown recursive policy %d", policy)
	}
}

// deleteTree removes path and everything under it, without further
// prompting.
func (e *Engine) deleteTree(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", path, err)
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := e.deleteTree(ctx, child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return errors.Errorf("deleting %s: %w", child, err)
		}
	}
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting directory %s: %w", path, err)
	}
	return nil
}

// deleteAskEach prompts before descending into every directory, at every
// depth. Declining falls back to the plain primitive.
func (e *Engine) deleteAskEach(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.prompter.ConfirmRecursiveDelete(path) {
		if err := os.Remove(path); err != nil {
			return errors.Errorf("deleting directory %s: %w", path, err)
		}
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", path, err)
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := e.deleteAskEach(ctx, child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return errors.Errorf("deleting %s: %w", child, err)
		}
	}
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting directory %s: %w", path, err)
	}
	return nil
}

// DeleteMany deletes a batch of entries. The listing is processed in
// reverse order so a directory's children, which a hierarchical listing
// places after the directory, are removed before the directory itself.
// Per-entry failures are logged with the offending path and never abort
// the rest of the batch.
func (e *Engine) DeleteMany(ctx context.Context, paths []string, policy Policy) Report {
	logger := zerolog.Ctx(ctx)
	rep := Report{Total: len(paths)}

	for i := len(paths) - 1; i >= 0; i-- {
		path := paths[i]
		if err := ctx.Err(); err != nil {
			rep.Failures = append(rep.Failures, Failure{Path: path, Err: err})
			continue
		}
		if err := e.DeleteEntry(ctx, path, policy); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("delete failed")
			e.failureLine("delete failed", path)
			rep.Failures = append(rep.Failures, Failure{Path: path, Err: err})
			continue
		}
		rep.Succeeded++
	}
	return rep
}
