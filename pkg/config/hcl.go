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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclCommand struct {
		Shell    string   `hcl:"shell,optional"`
		Argv     []string `hcl:"argv,optional"`
		Callback string   `hcl:"callback,optional"`
	}
	type hclRule struct {
		Pattern  string   `hcl:"pattern"`
		Shell    string   `hcl:"shell,optional"`
		Argv     []string `hcl:"argv,optional"`
		Callback string   `hcl:"callback,optional"`
	}
	type hclArchiveRule struct {
		Pattern string      `hcl:"pattern"`
		Append  *hclCommand `hcl:"append,block"`
		Create  *hclCommand `hcl:"create,block"`
	}
	type hclConfig struct {
		Shell           string `hcl:"shell,optional"`
		RecursiveDelete string `hcl:"recursive_delete,optional"`
		RecursiveCopy   string `hcl:"recursive_copy,optional"`
		PreserveTimes   *bool  `hcl:"preserve_times,optional"`

		View         []hclRule        `hcl:"view,block"`
		Print        []hclRule        `hcl:"print,block"`
		CompactPrint []hclRule        `hcl:"compact_print,block"`
		Unpack       []hclRule        `hcl:"unpack,block"`
		Extract      []hclRule        `hcl:"extract,block"`
		List         []hclRule        `hcl:"list,block"`
		ArchiveCopy  []hclArchiveRule `hcl:"archive_copy,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := Default()
	if hclCfg.Shell != "" {
		cfg.Shell = hclCfg.Shell
	}
	if hclCfg.RecursiveDelete != "" {
		cfg.RecursiveDelete = hclCfg.RecursiveDelete
	}
	if hclCfg.RecursiveCopy != "" {
		cfg.RecursiveCopy = hclCfg.RecursiveCopy
	}
	if hclCfg.PreserveTimes != nil {
		cfg.PreserveTimes = *hclCfg.PreserveTimes
	}

	ruleEntries := func(in []hclRule) []RuleEntry {
		out := make([]RuleEntry, 0, len(in))
		for _, r := range in {
			out = append(out, RuleEntry{
				Pattern: r.Pattern,
				CommandEntry: CommandEntry{
					Shell:    r.Shell,
					Argv:     r.Argv,
					Callback: r.Callback,
				},
			})
		}
		return out
	}

	cfg.View = ruleEntries(hclCfg.View)
	cfg.Print = ruleEntries(hclCfg.Print)
	cfg.CompactPrint = ruleEntries(hclCfg.CompactPrint)
	cfg.Unpack = ruleEntries(hclCfg.Unpack)
	cfg.Extract = ruleEntries(hclCfg.Extract)
	cfg.List = ruleEntries(hclCfg.List)

	for _, r := range hclCfg.ArchiveCopy {
		entry := ArchiveEntry{Pattern: r.Pattern}
		if r.Append != nil {
			entry.Append = &CommandEntry{
				Shell:    r.Append.Shell,
				Argv:     r.Append.Argv,
				Callback: r.Append.Callback,
			}
		}
		if r.Create != nil {
			entry.Create = &CommandEntry{
				Shell:    r.Create.Shell,
				Argv:     r.Create.Argv,
				Callback: r.Create.Callback,
			}
		}
		cfg.ArchiveCopy = append(cfg.ArchiveCopy, entry)
	}

	return cfg, nil
}
