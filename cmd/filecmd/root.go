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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filecmd/cmd/filecmd/commands"
	"github.com/walteh/filecmd/pkg/archive"
	"github.com/walteh/filecmd/pkg/config"
	"github.com/walteh/filecmd/pkg/execute"
	"github.com/walteh/filecmd/pkg/fsops"
	"github.com/walteh/filecmd/pkg/operation"
	"github.com/walteh/filecmd/pkg/prompt"
	"github.com/walteh/filecmd/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	assumeYes  bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer every confirmation with yes")
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
}

// buildRootOpts wires the dispatcher from the loaded configuration and
// hands the collaborators to the subcommands.
func buildRootOpts(ctx context.Context, ro *commands.RootOpts) (context.Context, error) {
	logger := setupLogging()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return ctx, errors.Errorf("loading config: %w", err)
	}
	logger.Debug().Str("config_hash", cfg.Hash()).Msg("configuration loaded")

	tables, err := cfg.Tables()
	if err != nil {
		return ctx, errors.Errorf("compiling rule tables: %w", err)
	}
	deletePolicy, err := cfg.DeletePolicy()
	if err != nil {
		return ctx, err
	}
	copyPolicy, err := cfg.CopyPolicy()
	if err != nil {
		return ctx, err
	}

	reporter := status.New(os.Stdout, logger)
	ctx = status.NewContext(ctx, reporter)

	var prompter commands.Prompter = prompt.NewInteractive()
	overwrite := fsops.OverwriteAsk
	if assumeYes {
		prompter = prompt.NewAuto(true)
		overwrite = fsops.OverwriteAlways
	}

	executor := execute.New(execute.Options{
		Shell:     cfg.Shell,
		Announcer: reporter,
	})
	engine := fsops.New(prompter, reporter)
	resolver := archive.New(tables.ArchiveCopy, prompter)

	operator, err := operation.New(operation.Options{
		Tables:        tables,
		Executor:      executor,
		Engine:        engine,
		Archive:       resolver,
		Reporter:      reporter,
		Prompter:      prompter,
		DeletePolicy:  deletePolicy,
		CopyPolicy:    copyPolicy,
		Overwrite:     overwrite,
		PreserveTimes: cfg.PreserveTimes,
	})
	if err != nil {
		return ctx, errors.Errorf("building operator: %w", err)
	}

	ro.Config = cfg
	ro.Operator = operator
	ro.Reporter = reporter
	return ctx, nil
}
