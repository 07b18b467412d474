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

	"github.com/spf13/cobra"
	"github.com/walteh/filecmd/cmd/filecmd/commands"
)

func main() {
	ro := &commands.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "filecmd",
		Short: "run shell commands on files chosen by name patterns",
		Long: `filecmd matches file names against ordered pattern tables and runs
the configured shell command for the first rule that fits. It covers
viewing, printing, unpacking, listing and archiving files as well as
recursive delete and copy with confirmation policies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildRootOpts(cmd.Context(), ro)
			cmd.SetContext(ctx)
			return err
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewViewCmd(ro),
		commands.NewPrintCmd(ro),
		commands.NewUnpackCmd(ro),
		commands.NewExtractCmd(ro),
		commands.NewListCmd(ro),
		commands.NewDeleteCmd(ro),
		commands.NewCopyCmd(ro),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
