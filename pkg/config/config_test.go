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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filecmd/pkg/fsops"
	"github.com/walteh/filecmd/pkg/rules"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	deletePolicy, err := cfg.DeletePolicy()
	require.NoError(t, err)
	assert.Equal(t, fsops.PolicyAskTop, deletePolicy)

	copyPolicy, err := cfg.CopyPolicy()
	require.NoError(t, err)
	assert.Equal(t, fsops.PolicyAskTop, copyPolicy)

	assert.True(t, cfg.PreserveTimes)

	tables, err := cfg.Tables()
	require.NoError(t, err)
	spec, err := tables.View.Resolve("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, rules.Template(`${PAGER:-less} %s`), spec)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "filecmd.yaml", `
shell: /bin/bash
recursive_delete: always
recursive_copy: ask-each
view:
  - pattern: '\.md$'
    shell: "glow %s"
unpack:
  - pattern: '\.rar$'
    argv: [unrar, x]
archive_copy:
  - pattern: '\.7z$'
    append:
      argv: [7z, a]
    create:
      argv: [7z, a]
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/bash", cfg.Shell)

	deletePolicy, err := cfg.DeletePolicy()
	require.NoError(t, err)
	assert.Equal(t, fsops.PolicyAlways, deletePolicy)

	copyPolicy, err := cfg.CopyPolicy()
	require.NoError(t, err)
	assert.Equal(t, fsops.PolicyAskEach, copyPolicy)

	tables, err := cfg.Tables()
	require.NoError(t, err)

	// The user rule is layered over the built-in catch-all.
	spec, err := tables.View.Resolve("readme.md")
	require.NoError(t, err)
	assert.Equal(t, rules.Template("glow %s"), spec)

	spec, err = tables.View.Resolve("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, rules.Template(`${PAGER:-less} %s`), spec)

	spec, err = tables.Unpack.Resolve("bundle.rar")
	require.NoError(t, err)
	assert.Equal(t, rules.Argv{"unrar", "x"}, spec)

	rule, err := tables.ArchiveCopy.Resolve("out.7z")
	require.NoError(t, err)
	assert.Equal(t, rules.Argv{"7z", "a"}, rule.Append)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "filecmd.yaml", `
recursive_deletion: always
`)
	_, err := Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "filecmd.hcl", `
shell           = "/bin/zsh"
recursive_copy  = "always"
preserve_times  = false

view {
  pattern = "\\.md$"
  shell   = "glow %s"
}

unpack {
  pattern  = "\\.gz$"
  callback = "decompress"
}

archive_copy {
  pattern = "\\.7z$"

  append {
    argv = ["7z", "a"]
  }
  create {
    argv = ["7z", "a"]
  }
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/zsh", cfg.Shell)
	assert.False(t, cfg.PreserveTimes)

	copyPolicy, err := cfg.CopyPolicy()
	require.NoError(t, err)
	assert.Equal(t, fsops.PolicyAlways, copyPolicy)

	tables, err := cfg.Tables()
	require.NoError(t, err)

	spec, err := tables.View.Resolve("readme.md")
	require.NoError(t, err)
	assert.Equal(t, rules.Template("glow %s"), spec)

	spec, err = tables.Unpack.Resolve("dump.gz")
	require.NoError(t, err)
	cb, ok := spec.(rules.Callback)
	require.True(t, ok)
	assert.Equal(t, "decompress", cb.Name)

	rule, err := tables.ArchiveCopy.Resolve("out.7z")
	require.NoError(t, err)
	assert.Equal(t, rules.Argv{"7z", "a"}, rule.Create)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bad_policy",
			yaml:    "recursive_delete: sometimes\n",
			wantErr: "unknown recursive policy",
		},
		{
			name: "bad_pattern",
			yaml: `
view:
  - pattern: '['
    shell: "less %s"
`,
			wantErr: "compiling pattern",
		},
		{
			name: "two_command_forms",
			yaml: `
view:
  - pattern: '\.txt$'
    shell: "less %s"
    argv: [less]
`,
			wantErr: "exactly one of shell, argv or callback",
		},
		{
			name: "unknown_callback",
			yaml: `
unpack:
  - pattern: '\.gz$'
    callback: vanish
`,
			wantErr: "unknown callback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "filecmd.yaml", tt.yaml)
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeConfig(t, "filecmd.toml", "shell = \"/bin/sh\"\n")
	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestHash(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Hash(), b.Hash())

	b.Shell = "/bin/bash"
	assert.NotEqual(t, a.Hash(), b.Hash())
}
