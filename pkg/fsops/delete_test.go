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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrompter answers every confirmation the same way and records what
// it was asked.
type fakePrompter struct {
	answer         bool
	deleteAsked    []string
	copyAsked      []string
	overwriteAsked []string
}

func (p *fakePrompter) ConfirmRecursiveDelete(path string) bool {
	p.deleteAsked = append(p.deleteAsked, path)
	return p.answer
}

func (p *fakePrompter) ConfirmRecursiveCopy(path string) bool {
	p.copyAsked = append(p.copyAsked, path)
	return p.answer
}

func (p *fakePrompter) ConfirmOverwrite(path string) bool {
	p.overwriteAsked = append(p.overwriteAsked, path)
	return p.answer
}

// makeTree builds dir/{top.txt, sub/{inner.txt, deep/leaf.txt}} and
// returns dir.
func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755))
	for _, f := range []string{
		filepath.Join(dir, "top.txt"),
		filepath.Join(dir, "sub", "inner.txt"),
		filepath.Join(dir, "sub", "deep", "leaf.txt"),
	} {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	}
	return dir
}

func TestDeleteEntryFile(t *testing.T) {
	prompter := &fakePrompter{}
	eng := New(prompter, nil)

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	require.NoError(t, eng.DeleteEntry(context.Background(), file, PolicyDisabled))
	_, err := os.Lstat(file)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, prompter.deleteAsked, "plain files never prompt")
}

func TestDeleteEntryDirectoryPolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      Policy
		answer      bool
		wantErr     bool
		wantGone    bool
		wantPrompts int
	}{
		{
			name:    "disabled_fails_on_non_empty",
			policy:  PolicyDisabled,
			wantErr: true,
		},
		{
			name:     "always_removes_tree_without_asking",
			policy:   PolicyAlways,
			wantGone: true,
		},
		{
			name:        "ask_top_confirmed_removes_tree_with_one_prompt",
			policy:      PolicyAskTop,
			answer:      true,
			wantGone:    true,
			wantPrompts: 1,
		},
		{
			name:        "ask_top_declined_falls_back_to_plain_remove",
			policy:      PolicyAskTop,
			answer:      false,
			wantErr:     true,
			wantPrompts: 1,
		},
		{
			name:   "ask_each_confirmed_prompts_per_directory",
			policy: PolicyAskEach,
			answer: true,
			// dir itself, sub, sub/deep
			wantGone:    true,
			wantPrompts: 3,
		},
		{
			name:        "ask_each_declined_at_top",
			policy:      PolicyAskEach,
			answer:      false,
			wantErr:     true,
			wantPrompts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeTree(t)
			prompter := &fakePrompter{answer: tt.answer}
			eng := New(prompter, nil)

			err := eng.DeleteEntry(context.Background(), dir, tt.policy)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			_, statErr := os.Lstat(dir)
			if tt.wantGone {
				assert.True(t, os.IsNotExist(statErr), "tree should be gone")
			} else {
				assert.NoError(t, statErr, "tree should survive")
				// A failed delete leaves the contents untouched.
				_, err := os.Lstat(filepath.Join(dir, "sub", "deep", "leaf.txt"))
				assert.NoError(t, err)
			}
			assert.Len(t, prompter.deleteAsked, tt.wantPrompts)
		})
	}
}

func TestAskTopPromptsPerTopLevelCall(t *testing.T) {
	// The promotion from one confirmed call must not bleed into the
	// next: an independent top-level call gets its own fresh prompt.
	prompter := &fakePrompter{answer: true}
	eng := New(prompter, nil)

	first := makeTree(t)
	second := makeTree(t)

	require.NoError(t, eng.DeleteEntry(context.Background(), first, PolicyAskTop))
	require.NoError(t, eng.DeleteEntry(context.Background(), second, PolicyAskTop))

	assert.Equal(t, []string{first, second}, prompter.deleteAsked)
}

func TestDeleteMany(t *testing.T) {
	t.Run("children_listed_after_parent_still_delete", func(t *testing.T) {
		// A hierarchical listing places a directory before its
		// children; reverse-order processing empties the directory
		// before removing it, even with recursion disabled.
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0o755))
		inner := filepath.Join(sub, "inner.txt")
		require.NoError(t, os.WriteFile(inner, []byte("x"), 0o644))

		eng := New(&fakePrompter{}, nil)
		rep := eng.DeleteMany(context.Background(), []string{sub, inner}, PolicyDisabled)

		assert.Equal(t, 2, rep.Total)
		assert.Equal(t, 2, rep.Succeeded)
		assert.Zero(t, rep.Failed())
		_, err := os.Lstat(sub)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("per_entry_failure_does_not_abort_batch", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.txt")
		c := filepath.Join(dir, "c.txt")
		require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(c, []byte("x"), 0o644))
		missing := filepath.Join(dir, "never-existed.txt")

		eng := New(&fakePrompter{}, nil)
		rep := eng.DeleteMany(context.Background(), []string{a, missing, c}, PolicyDisabled)

		assert.Equal(t, 3, rep.Total)
		assert.Equal(t, 2, rep.Succeeded)
		require.Equal(t, 1, rep.Failed())
		assert.Equal(t, missing, rep.Failures[0].Path)

		// Entries on both sides of the failure were processed.
		_, err := os.Lstat(a)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Lstat(c)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "", want: PolicyDisabled},
		{in: "disabled", want: PolicyDisabled},
		{in: "always", want: PolicyAlways},
		{in: "ask-top", want: PolicyAskTop},
		{in: "top", want: PolicyAskTop},
		{in: "ask-each", want: PolicyAskEach},
		{in: "each", want: PolicyAskEach},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("policy_"+tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustRoundTrip(t, got))
		})
	}
}

func mustRoundTrip(t *testing.T, p Policy) Policy {
	t.Helper()
	got, err := ParsePolicy(p.String())
	require.NoError(t, err)
	return got
}
