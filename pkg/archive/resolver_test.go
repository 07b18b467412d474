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

package archive

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filecmd/pkg/rules"
)

// scriptedPrompter gives fixed answers per question kind.
type scriptedPrompter struct {
	create    bool
	append    bool
	overwrite bool

	createAsked    int
	appendAsked    int
	overwriteAsked int
}

func (p *scriptedPrompter) ConfirmCreateArchive(string) bool {
	p.createAsked++
	return p.create
}

func (p *scriptedPrompter) ConfirmAppendArchive(string) bool {
	p.appendAsked++
	return p.append
}

func (p *scriptedPrompter) ConfirmOverwriteArchive(string) bool {
	p.overwriteAsked++
	return p.overwrite
}

func testTable(t *testing.T) *rules.ArchiveTable {
	t.Helper()
	table, err := rules.NewArchiveTable(
		rules.ArchiveRule{Pattern: rules.MustPattern(`\.tgz$`), Create: rules.Argv{"tar", "czvf"}},
		rules.ArchiveRule{Pattern: rules.MustPattern(`\.tar$`), Append: rules.Argv{"tar", "rvf"}, Create: rules.Argv{"tar", "cvf"}},
		rules.ArchiveRule{Pattern: rules.MustPattern(`\.zoo$`), Append: rules.Argv{"zoo", "a"}},
	)
	require.NoError(t, err)
	return table
}

func TestResolveCopyTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("existing_directory", func(t *testing.T) {
		r := New(testTable(t), &scriptedPrompter{})
		dec, err := r.ResolveCopyTarget(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, KindDirectory, dec.Kind)
		assert.Nil(t, dec.Spec)
	})

	t.Run("plain_path_is_not_a_destination", func(t *testing.T) {
		r := New(testTable(t), &scriptedPrompter{})
		dec, err := r.ResolveCopyTarget(ctx, filepath.Join(t.TempDir(), "plain.txt"))
		require.NoError(t, err)
		assert.Equal(t, KindNotADestination, dec.Kind)
	})

	t.Run("nonexistent_archive_prompts_create", func(t *testing.T) {
		prompter := &scriptedPrompter{create: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, filepath.Join(t.TempDir(), "out.tar"))
		require.NoError(t, err)
		assert.Equal(t, KindNewArchive, dec.Kind)
		assert.Equal(t, rules.Argv{"tar", "cvf"}, dec.Spec)
		assert.Equal(t, 1, prompter.createAsked)
		assert.Zero(t, prompter.appendAsked)
	})

	t.Run("create_declined", func(t *testing.T) {
		r := New(testTable(t), &scriptedPrompter{create: false})
		_, err := r.ResolveCopyTarget(ctx, filepath.Join(t.TempDir(), "out.tar"))
		require.ErrorIs(t, err, ErrDeclined)
	})

	t.Run("existing_archive_append_confirmed", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "out.tar")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		prompter := &scriptedPrompter{append: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, KindAppendArchive, dec.Kind)
		assert.Equal(t, rules.Argv{"tar", "rvf"}, dec.Spec)
		assert.Equal(t, 1, prompter.appendAsked)
	})

	t.Run("append_declined_overwrite_confirmed_prefers_create", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "out.tar")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		prompter := &scriptedPrompter{append: false, overwrite: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, KindNewArchive, dec.Kind)
		assert.Equal(t, rules.Argv{"tar", "cvf"}, dec.Spec)
	})

	t.Run("append_only_format_falls_back_to_remove_then_append", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "out.zoo")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		prompter := &scriptedPrompter{append: false, overwrite: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, KindRemoveThenAppend, dec.Kind)
		assert.Equal(t, rules.Argv{"zoo", "a"}, dec.Spec)
	})

	t.Run("append_and_overwrite_both_declined", func(t *testing.T) {
		dir := t.TempDir()
		dest := filepath.Join(dir, "out.tar")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		r := New(testTable(t), &scriptedPrompter{})
		_, err := r.ResolveCopyTarget(ctx, dest)
		require.ErrorIs(t, err, ErrDeclined)
	})

	t.Run("create_only_format_ignores_existing_file", func(t *testing.T) {
		// tgz has no append command, so an existing file still goes
		// through the create path.
		dir := t.TempDir()
		dest := filepath.Join(dir, "out.tgz")
		require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

		prompter := &scriptedPrompter{create: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, KindNewArchive, dec.Kind)
		assert.Equal(t, 1, prompter.createAsked)
	})

	t.Run("append_only_format_with_no_target_is_unsupported", func(t *testing.T) {
		r := New(testTable(t), &scriptedPrompter{create: true, append: true, overwrite: true})
		_, err := r.ResolveCopyTarget(ctx, filepath.Join(t.TempDir(), "out.zoo"))
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("version_suffix_resolves_like_base_name", func(t *testing.T) {
		prompter := &scriptedPrompter{create: true}
		r := New(testTable(t), prompter)

		dec, err := r.ResolveCopyTarget(ctx, filepath.Join(t.TempDir(), "out.tar.~2~"))
		require.NoError(t, err)
		assert.Equal(t, KindNewArchive, dec.Kind)
	})
}

func TestRunBatchSerializesSameTarget(t *testing.T) {
	r := New(testTable(t), &scriptedPrompter{})
	dest := filepath.Join(t.TempDir(), "out.tar")

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.RunBatch(context.Background(), dest, func() error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "batches for one archive must not overlap")
}
