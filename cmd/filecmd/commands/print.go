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

package commands

import (
	"github.com/spf13/cobra"
)

// NewPrintCmd sends files to the printer through the matched command.
func NewPrintCmd(ro *RootOpts) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "print <file>...",
		Short: "print files with their configured print command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if compact {
				return ro.Operator.CompactPrint(cmd.Context(), args)
			}
			return ro.Operator.Print(cmd.Context(), args)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "use the compact (multi-column) print table")
	return cmd
}
