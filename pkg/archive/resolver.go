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

// Package archive decides whether a copy destination is an ordinary
// directory, a new archive, or an existing archive to append to: a
// "generalized directory" files can be copied into via an external
// archiver.
package archive

import (
	"context"
	"os"
	"path/filepath"

	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/filecmd/pkg/rules"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrDeclined is returned when the user refuses a required
	// confirmation.
	ErrDeclined = errors.New("declined by user")
	// ErrUnsupported is returned when a matched archive rule supports
	// neither create nor append for what the caller needs.
	ErrUnsupported = errors.New("unsupported archive operation")
)

// Prompter asks the user the archive-level confirmations.
type Prompter interface {
	// ConfirmCreateArchive asks before creating a new archive at path.
	ConfirmCreateArchive(path string) bool
	// ConfirmAppendArchive asks before appending to the archive at path.
	ConfirmAppendArchive(path string) bool
	// ConfirmOverwriteArchive asks, after an append was refused,
	// whether the existing archive at path may be replaced.
	ConfirmOverwriteArchive(path string) bool
}

// DecisionKind classifies a copy destination.
type DecisionKind int

const (
	// KindDirectory means the destination is an ordinary directory.
	KindDirectory DecisionKind = iota
	// KindNewArchive means a new archive is created with the decision's
	// command spec.
	KindNewArchive
	// KindAppendArchive means the sources are appended to an existing
	// archive.
	KindAppendArchive
	// KindRemoveThenAppend means the existing target is deleted first
	// and the append command then synthesizes a fresh archive, because
	// the format has no dedicated create command.
	KindRemoveThenAppend
	// KindNotADestination means the path is neither a directory nor a
	// recognized archive target.
	KindNotADestination
)

// String returns a short name for the decision kind.
func (k DecisionKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindNewArchive:
		return "new-archive"
	case KindAppendArchive:
		return "append-archive"
	case KindRemoveThenAppend:
		return "remove-then-append"
	case KindNotADestination:
		return "not-a-destination"
	default:
		return "unknown"
	}
}

// Decision is the outcome of resolving a copy destination. Spec is set
// for the archive kinds.
type Decision struct {
	Kind DecisionKind
	Spec rules.Spec
}

// Resolver resolves copy destinations against an archive rule table.
type Resolver struct {
	table    *rules.ArchiveTable
	prompter Prompter

	mu      sync.Mutex
	targets map[string]*semaphore.Weighted
}

// New creates a resolver.
func New(table *rules.ArchiveTable, prompter Prompter) *Resolver {
	return &Resolver{
		table:    table,
		prompter: prompter,
		targets:  map[string]*semaphore.Weighted{},
	}
}

// ResolveCopyTarget classifies dest. It is consulted once per batch, not
// once per source file, because the selected command processes all marked
// sources in a single invocation.
func (r *Resolver) ResolveCopyTarget(ctx context.Context, dest string) (Decision, error) {
	logger := zerolog.Ctx(ctx)

	rule, err := r.table.Resolve(dest)
	if errors.Is(err, rules.ErrNoRule) {
		info, statErr := os.Stat(dest)
		if statErr == nil && info.IsDir() {
			return Decision{Kind: KindDirectory}, nil
		}
		return Decision{Kind: KindNotADestination}, nil
	}
	if err != nil {
		return Decision{}, err
	}

	_, statErr := os.Lstat(dest)
	exists := statErr == nil

	logger.Debug().
		Str("dest", dest).
		Bool("exists", exists).
		Bool("has_append", rule.Append != nil).
		Bool("has_create", rule.Create != nil).
		Msg("resolved archive rule")

	if !exists || rule.Append == nil {
		if rule.Create == nil {
			return Decision{}, errors.Errorf("can't create archive %s: %w", dest, ErrUnsupported)
		}
		if !r.prompter.ConfirmCreateArchive(dest) {
			return Decision{}, errors.Errorf("creating archive %s: %w", dest, ErrDeclined)
		}
		return Decision{Kind: KindNewArchive, Spec: rule.Create}, nil
	}

	if r.prompter.ConfirmAppendArchive(dest) {
		return Decision{Kind: KindAppendArchive, Spec: rule.Append}, nil
	}
	if !r.prompter.ConfirmOverwriteArchive(dest) {
		return Decision{}, errors.Errorf("writing archive %s: %w", dest, ErrDeclined)
	}
	if rule.Create != nil {
		return Decision{Kind: KindNewArchive, Spec: rule.Create}, nil
	}
	return Decision{Kind: KindRemoveThenAppend, Spec: rule.Append}, nil
}

// RunBatch runs fn while holding an exclusive slot for the target file,
// so independent archive batches aimed at the same archive never write
// concurrently. Batches for different targets do not block each other.
func (r *Resolver) RunBatch(ctx context.Context, dest string, fn func() error) error {
	key := dest
	if abs, err := filepath.Abs(dest); err == nil {
		key = abs
	}

	r.mu.Lock()
	sem, ok := r.targets[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		r.targets[key] = sem
	}
	r.mu.Unlock()

	if err := sem.Acquire(ctx, 1); err != nil {
		return errors.Errorf("waiting for archive %s: %w", dest, err)
	}
	defer sem.Release(1)
	return fn()
}
