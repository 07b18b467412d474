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

// Package status is the line-oriented reporting surface: one line per
// announced command, one line per failed entry, and a final summary line
// per batch. Everything is mirrored into zerolog for offline debugging.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Reporter writes user-visible operation lines to a console writer and
// structured copies to zerolog.
type Reporter struct {
	console io.Writer
	zlog    zerolog.Logger
	mu      sync.Mutex
}

// 🏭 New creates a new reporter.
func New(console io.Writer, zlog zerolog.Logger) *Reporter {
	return &Reporter{
		console: console,
		zlog:    zlog,
	}
}

// Announce reports a pending action: the operation name and the literal
// command about to run, so a failed run can be reproduced by hand.
func (r *Reporter) Announce(op, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %s: %s\n",
		color.New(color.FgBlue).Sprint("⟳"),
		op,
		color.New(color.Faint).Sprint(command))

	r.zlog.Info().
		Str("op", op).
		Str("command", command).
		Msg("running command")
}

// Done updates a previously announced action to done.
func (r *Reporter) Done(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %s: done\n",
		color.New(color.FgGreen).Sprint("✓"), op)

	r.zlog.Info().Str("op", op).Msg("command done")
}

// Failed reports a command that exited nonzero or abnormally.
func (r *Reporter) Failed(op, command, exitStatus string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %s: %s %s\n",
		color.New(color.FgRed).Sprint("✗"),
		op,
		exitStatus,
		color.New(color.Faint).Sprint(command))

	r.zlog.Error().
		Str("op", op).
		Str("command", command).
		Str("exit_status", exitStatus).
		Msg("command failed")
}

// FailureLine logs one failed leaf operation: a free-text reason plus the
// offending path. Batch operations emit one of these per failed entry and
// keep going.
func (r *Reporter) FailureLine(reason, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %s: %s\n",
		color.New(color.FgRed).Sprint("✗"),
		reason,
		color.New(color.FgYellow).Sprint(path))

	r.zlog.Error().
		Str("path", path).
		Str("reason", reason).
		Msg("entry failed")
}

// Summary emits the final batch line for op.
func (r *Reporter) Summary(op string, succeeded, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s\n", FormatSummary(succeeded, total))

	r.zlog.Info().
		Str("op", op).
		Int("succeeded", succeeded).
		Int("total", total).
		Msg("batch complete")
}

// Header prints the program banner line.
func (r *Reporter) Header(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	brand := color.New(color.Bold, color.FgCyan).Sprint("filecmd")
	fmt.Fprintf(r.console, "\n%s %s\n\n", brand, color.New(color.Faint).Sprint("• "+msg))
	r.zlog.Info().Msg(msg)
}
