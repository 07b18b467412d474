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

// Package commands holds the subcommand definitions for the filecmd
// binary. Each command borrows the shared collaborators from RootOpts,
// which the root command populates once flags are parsed.
package commands

import (
	"github.com/walteh/filecmd/pkg/archive"
	"github.com/walteh/filecmd/pkg/config"
	"github.com/walteh/filecmd/pkg/fsops"
	"github.com/walteh/filecmd/pkg/operation"
	"github.com/walteh/filecmd/pkg/status"
)

// Prompter is the union of every confirmation surface the commands
// need. Both the interactive prompter and the fixed-answer one used by
// --yes satisfy it.
type Prompter interface {
	fsops.Prompter
	archive.Prompter
	operation.Prompter
}

// RootOpts carries the wired collaborators into the subcommands. The
// root command fills it in its PersistentPreRunE, after flag parsing.
type RootOpts struct {
	Config   *config.Config
	Operator *operation.Operator
	Reporter *status.Reporter
}
