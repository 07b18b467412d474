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

// Package execute turns a resolved command spec plus concrete arguments
// into a literal command and runs it, either blocking with captured
// output or fire-and-forget.
package execute

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/filecmd/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// WaitMode selects between blocking and fire-and-forget execution.
type WaitMode int

const (
	// Blocking spawns the process and waits for it, capturing output.
	Blocking WaitMode = iota
	// Async spawns the process and returns immediately. Failures of
	// async commands are never observed.
	Async
)

// OutputSink selects where the captured output of a blocking run goes.
// The zero value discards it.
type OutputSink struct {
	name string
}

// Discard returns a sink that drops all output.
func Discard() OutputSink {
	return OutputSink{}
}

// NamedBuffer returns a sink writing into the named reusable surface.
// The surface is cleared before each blocking run.
func NamedBuffer(name string) OutputSink {
	return OutputSink{name: name}
}

// Request describes one execution of a resolved command spec.
type Request struct {
	// OpName is the operation name used in user-facing messages.
	OpName string
	// Spec is the resolved command spec.
	Spec rules.Spec
	// Sources are the source file references (space-joined for
	// templates, appended for argv specs).
	Sources []string
	// Dest is the optional destination argument.
	Dest string
	// Wait selects blocking or async execution.
	Wait WaitMode
	// Sink selects where blocking output is captured.
	Sink OutputSink
}

// Result describes a successful execution.
type Result struct {
	OpName string
	// Command is the literal command that ran, for transparency.
	Command string
	// OutputRef names the surface holding captured output, if any.
	OutputRef string
}

// CommandError is returned when a blocking command exits nonzero or
// terminates abnormally, or when a callback fails.
type CommandError struct {
	Op         string
	Command    string
	ExitStatus string
	OutputRef  string
	Err        error
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.ExitStatus)
	}
	return fmt.Sprintf("%s: %q: %s", e.Op, e.Command, e.ExitStatus)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Announcer receives user-visible progress lines. *status.Reporter
// satisfies it.
type Announcer interface {
	Announce(op, command string)
	Done(op string)
	Failed(op, command, exitStatus string)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string, string)      {}
func (nopAnnouncer) Done(string)                  {}
func (nopAnnouncer) Failed(string, string, string) {}

// Options configures an Executor.
type Options struct {
	// Runner spawns processes. Defaults to the os/exec runner.
	Runner Runner
	// Shell is the command interpreter for template specs. Defaults
	// to /bin/sh.
	Shell string
	// Surfaces holds the named output buffers. Created if nil.
	Surfaces *Surfaces
	// Announcer receives progress lines. Optional.
	Announcer Announcer
}

// Executor materializes and runs commands.
type Executor struct {
	runner    Runner
	shell     string
	surfaces  *Surfaces
	announcer Announcer
}

// New creates an executor.
func New(opts Options) *Executor {
	if opts.Runner == nil {
		opts.Runner = &execRunner{}
	}
	if opts.Shell == "" {
		opts.Shell = "/bin/sh"
	}
	if opts.Surfaces == nil {
		opts.Surfaces = NewSurfaces()
	}
	if opts.Announcer == nil {
		opts.Announcer = nopAnnouncer{}
	}
	return &Executor{
		runner:    opts.Runner,
		shell:     opts.Shell,
		surfaces:  opts.Surfaces,
		announcer: opts.Announcer,
	}
}

// Surfaces returns the named output buffers the executor captures into.
func (e *Executor) Surfaces() *Surfaces {
	return e.surfaces
}

// command is a materialized literal command.
type command struct {
	argv    []string
	display string
}

// materialize builds the literal command for spec. Template specs get the
// space-joined sources substituted for the first %s and the destination
// for the second, literally and unescaped, then run through the shell.
// Argv specs get the destination and then the sources appended.
func (e *Executor) materialize(spec rules.Spec, sources []string, dest string) (*command, error) {
	switch s := spec.(type) {
	case rules.Template:
		line := substituteTemplate(string(s), sources, dest)
		return &command{argv: []string{e.shell, "-c", line}, display: line}, nil
	case rules.Argv:
		argv := make([]string, 0, len(s)+len(sources)+1)
		argv = append(argv, s...)
		if dest != "" {
			argv = append(argv, dest)
		}
		argv = append(argv, sources...)
		return &command{argv: argv, display: strings.Join(argv, " ")}, nil
	case rules.Callback:
		return nil, errors.Errorf("callback %q has no command line", s.Name)
	default:
		return nil, errors.Errorf("unhandled command spec %T", spec)
	}
}

func substituteTemplate(format string, sources []string, dest string) string {
	line := strings.Replace(format, "%s", strings.Join(sources, " "), 1)
	if dest != "" {
		line = strings.Replace(line, "%s", dest, 1)
	}
	return line
}

// Preview returns the literal command line that Execute would run for
// spec, for presentation to the user (who may edit it). Callback specs
// have no command line.
func (e *Executor) Preview(spec rules.Spec, sources []string, dest string) (string, error) {
	cmd, err := e.materialize(spec, sources, dest)
	if err != nil {
		return "", err
	}
	return cmd.display, nil
}

// Execute runs one request. Callback specs are invoked in process, once
// per source. Async requests return success immediately after spawning.
// Blocking requests wait for the process, capture combined output into
// the sink, and return a *CommandError on nonzero exit.
func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	if cb, ok := req.Spec.(rules.Callback); ok {
		return e.invokeCallback(ctx, req, cb)
	}

	cmd, err := e.materialize(req.Spec, req.Sources, req.Dest)
	if err != nil {
		return nil, errors.Errorf("materializing %s command: %w", req.OpName, err)
	}

	return e.run(ctx, req.OpName, cmd, req.Wait, req.Sink)
}

// RunShell runs an already-assembled shell command line, as produced by
// Preview and possibly edited by the user. The line is handed to the
// shell verbatim, with no further substitution.
func (e *Executor) RunShell(ctx context.Context, opName, line string, wait WaitMode, sink OutputSink) (*Result, error) {
	cmd := &command{argv: []string{e.shell, "-c", line}, display: line}
	return e.run(ctx, opName, cmd, wait, sink)
}

// run spawns a materialized command. Blocking runs suspend the caller for
// the full lifetime of the process; there is no timeout beyond ctx
// cancellation.
func (e *Executor) run(ctx context.Context, opName string, cmd *command, wait WaitMode, sink OutputSink) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	e.announcer.Announce(opName, cmd.display)
	logger.Debug().
		Str("op", opName).
		Str("command", cmd.display).
		Bool("async", wait == Async).
		Msg("executing")

	if wait == Async {
		if err := e.runner.Start(ctx, cmd.argv); err != nil {
			return nil, errors.Errorf("spawning %s command: %w", opName, err)
		}
		return &Result{OpName: opName, Command: cmd.display}, nil
	}

	var out io.Writer = io.Discard
	if sink.name != "" {
		out = e.surfaces.Reset(sink.name)
	}

	if err := e.runner.Run(ctx, cmd.argv, out); err != nil {
		exitStatus := describeExit(err)
		e.announcer.Failed(opName, cmd.display, exitStatus)
		return nil, &CommandError{
			Op:         opName,
			Command:    cmd.display,
			ExitStatus: exitStatus,
			OutputRef:  sink.name,
			Err:        err,
		}
	}

	e.announcer.Done(opName)
	return &Result{OpName: opName, Command: cmd.display, OutputRef: sink.name}, nil
}

func (e *Executor) invokeCallback(ctx context.Context, req Request, cb rules.Callback) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	e.announcer.Announce(req.OpName, cb.Name)

	for _, src := range req.Sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", src, err)
		}
		logger.Debug().
			Str("op", req.OpName).
			Str("callback", cb.Name).
			Str("file", src).
			Msg("invoking callback")
		if err := cb.Fn(abs, src); err != nil {
			e.announcer.Failed(req.OpName, cb.Name, err.Error())
			return nil, &CommandError{
				Op:         req.OpName,
				Command:    cb.Name,
				ExitStatus: err.Error(),
				Err:        err,
			}
		}
	}

	e.announcer.Done(req.OpName)
	return &Result{OpName: req.OpName, Command: cb.Name}, nil
}
