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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/filecmd/pkg/operation"
)

// NewListCmd prints an archive's table of contents.
func NewListCmd(ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "list the contents of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := ro.Operator.ListArchive(cmd.Context(), args[0], operation.DefaultListSurface)
			if listing != "" {
				fmt.Fprint(cmd.OutOrStdout(), listing)
			}
			return err
		},
	}
}
