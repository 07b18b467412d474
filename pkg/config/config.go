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
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/filecmd/pkg/fsops"
	"github.com/walteh/filecmd/pkg/rules"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 CommandEntry is one command specification in a config file: exactly
// one of shell (a format template handed to the command interpreter),
// argv (a literal program plus fixed flags) or callback (the name of a
// built-in action).
type CommandEntry struct {
	Shell    string   `json:"shell,omitempty" yaml:"shell,omitempty"`
	Argv     []string `json:"argv,omitempty" yaml:"argv,omitempty"`
	Callback string   `json:"callback,omitempty" yaml:"callback,omitempty"`
}

func (e CommandEntry) empty() bool {
	return e.Shell == "" && len(e.Argv) == 0 && e.Callback == ""
}

func (e CommandEntry) compile() (rules.Spec, error) {
	set := 0
	if e.Shell != "" {
		set++
	}
	if len(e.Argv) > 0 {
		set++
	}
	if e.Callback != "" {
		set++
	}
	if set != 1 {
		return nil, errors.New("exactly one of shell, argv or callback is required")
	}
	switch {
	case e.Shell != "":
		return rules.Template(e.Shell), nil
	case len(e.Argv) > 0:
		return rules.Argv(e.Argv), nil
	default:
		return rules.LookupCallback(e.Callback)
	}
}

// 📋 RuleEntry is one rule-table entry in a config file.
type RuleEntry struct {
	Pattern      string `json:"pattern" yaml:"pattern"`
	CommandEntry `yaml:",inline" json:",inline"`
}

func (e RuleEntry) compile() (rules.Rule, error) {
	p, err := rules.CompilePattern(e.Pattern)
	if err != nil {
		return rules.Rule{}, err
	}
	spec, err := e.CommandEntry.compile()
	if err != nil {
		return rules.Rule{}, errors.Errorf("rule %q: %w", e.Pattern, err)
	}
	return rules.Rule{Pattern: p, Spec: spec}, nil
}

// 📦 ArchiveEntry is one archive-copy rule in a config file. At least one
// of append and create must be present.
type ArchiveEntry struct {
	Pattern string        `json:"pattern" yaml:"pattern"`
	Append  *CommandEntry `json:"append,omitempty" yaml:"append,omitempty"`
	Create  *CommandEntry `json:"create,omitempty" yaml:"create,omitempty"`
}

func (e ArchiveEntry) compile() (rules.ArchiveRule, error) {
	p, err := rules.CompilePattern(e.Pattern)
	if err != nil {
		return rules.ArchiveRule{}, err
	}
	r := rules.ArchiveRule{Pattern: p}
	if e.Append != nil && !e.Append.empty() {
		if r.Append, err = e.Append.compile(); err != nil {
			return rules.ArchiveRule{}, errors.Errorf("archive rule %q append: %w", e.Pattern, err)
		}
	}
	if e.Create != nil && !e.Create.empty() {
		if r.Create, err = e.Create.compile(); err != nil {
			return rules.ArchiveRule{}, errors.Errorf("archive rule %q create: %w", e.Pattern, err)
		}
	}
	return r, nil
}

// 📚 Config is the complete configuration: the user-extensible rule
// tables (prepended to the built-in defaults) and the process-wide policy
// settings.
type Config struct {
	// Shell is the command interpreter for template specs.
	Shell string `json:"shell,omitempty" yaml:"shell,omitempty"`
	// RecursiveDelete and RecursiveCopy are one of disabled, always,
	// ask-top or ask-each.
	RecursiveDelete string `json:"recursive_delete,omitempty" yaml:"recursive_delete,omitempty"`
	RecursiveCopy   string `json:"recursive_copy,omitempty" yaml:"recursive_copy,omitempty"`
	// PreserveTimes carries modification times over on copy.
	PreserveTimes bool `json:"preserve_times,omitempty" yaml:"preserve_times,omitempty"`

	View         []RuleEntry    `json:"view,omitempty" yaml:"view,omitempty"`
	Print        []RuleEntry    `json:"print,omitempty" yaml:"print,omitempty"`
	CompactPrint []RuleEntry    `json:"compact_print,omitempty" yaml:"compact_print,omitempty"`
	Unpack       []RuleEntry    `json:"unpack,omitempty" yaml:"unpack,omitempty"`
	Extract      []RuleEntry    `json:"extract,omitempty" yaml:"extract,omitempty"`
	List         []RuleEntry    `json:"list,omitempty" yaml:"list,omitempty"`
	ArchiveCopy  []ArchiveEntry `json:"archive_copy,omitempty" yaml:"archive_copy,omitempty"`
}

// Default returns the configuration used when no config file exists:
// built-in tables only, ask-at-top recursion, times preserved.
func Default() *Config {
	return &Config{
		RecursiveDelete: "ask-top",
		RecursiveCopy:   "ask-top",
		PreserveTimes:   true,
	}
}

// Load loads the configuration from path. An empty path returns the
// defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	if path == "" {
		logger.Debug().Msg("no config file, using defaults")
		return Default(), nil
	}
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks the policies and compiles every table once to surface
// pattern and command errors at load time.
func (c *Config) Validate() error {
	if _, err := c.DeletePolicy(); err != nil {
		return err
	}
	if _, err := c.CopyPolicy(); err != nil {
		return err
	}
	_, err := c.Tables()
	return err
}

// DeletePolicy returns the recursive-delete policy.
func (c *Config) DeletePolicy() (fsops.Policy, error) {
	return fsops.ParsePolicy(c.RecursiveDelete)
}

// CopyPolicy returns the recursive-copy policy.
func (c *Config) CopyPolicy() (fsops.Policy, error) {
	return fsops.ParsePolicy(c.RecursiveCopy)
}

// Hash returns a content hash of the configuration, used to log config
// changes between runs.
func (c *Config) Hash() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Tables holds the compiled rule tables, user entries first.
type Tables struct {
	View         *rules.Table
	Print        *rules.Table
	CompactPrint *rules.Table
	Unpack       *rules.Table
	Extract      *rules.Table
	List         *rules.Table
	ArchiveCopy  *rules.ArchiveTable
}

// Tables compiles the configured rule entries and layers them over the
// built-in defaults.
func (c *Config) Tables() (*Tables, error) {
	t := &Tables{}
	var err error
	if t.View, err = compileTable(rules.DefaultViewTable(), c.View); err != nil {
		return nil, err
	}
	if t.Print, err = compileTable(rules.DefaultPrintTable(), c.Print); err != nil {
		return nil, err
	}
	if t.CompactPrint, err = compileTable(rules.DefaultCompactPrintTable(), c.CompactPrint); err != nil {
		return nil, err
	}
	if t.Unpack, err = compileTable(rules.DefaultUnpackTable(), c.Unpack); err != nil {
		return nil, err
	}
	if t.Extract, err = compileTable(rules.DefaultExtractTable(), c.Extract); err != nil {
		return nil, err
	}
	if t.List, err = compileTable(rules.DefaultListTable(), c.List); err != nil {
		return nil, err
	}
	if t.ArchiveCopy, err = compileArchiveTable(rules.DefaultArchiveCopyTable(), c.ArchiveCopy); err != nil {
		return nil, err
	}
	return t, nil
}

func compileTable(defaults *rules.Table, entries []RuleEntry) (*rules.Table, error) {
	compiled := make([]rules.Rule, 0, len(entries))
	for _, e := range entries {
		r, err := e.compile()
		if err != nil {
			return nil, errors.Errorf("%s table: %w", defaults.Name(), err)
		}
		compiled = append(compiled, r)
	}
	return defaults.Prepend(compiled...), nil
}

func compileArchiveTable(defaults *rules.ArchiveTable, entries []ArchiveEntry) (*rules.ArchiveTable, error) {
	compiled := make([]rules.ArchiveRule, 0, len(entries))
	for _, e := range entries {
		r, err := e.compile()
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, r)
	}
	return defaults.Prepend(compiled...)
}
