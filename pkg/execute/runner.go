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

package execute

import (
	"context"
	"io"
	"os/exec"

	"gitlab.com/tozd/go/errors"
)

// Runner spawns external processes. Tests substitute a mock runner to
// capture the argv the executor builds.
type Runner interface {
	// Run spawns argv and blocks until it terminates, writing combined
	// stdout/stderr to output. A nonzero exit is returned as the error
	// from (*exec.Cmd).Wait.
	Run(ctx context.Context, argv []string, output io.Writer) error

	// Start spawns argv without waiting for it.
	Start(ctx context.Context, argv []string) error
}

// execRunner is the production Runner on top of os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, argv []string, output io.Writer) error {
	if len(argv) == 0 {
		return errors.New("empty argv")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = output
	cmd.Stderr = output
	return cmd.Run()
}

func (r *execRunner) Start(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty argv")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child so an async command never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// describeExit renders the termination of a spawned process: an exit code
// or a signal description.
func describeExit(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Error()
	}
	return err.Error()
}
