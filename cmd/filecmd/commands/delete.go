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

// NewDeleteCmd removes files and directories under the configured
// recursion policy.
func NewDeleteCmd(ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <path>...",
		Aliases: []string{"rm"},
		Short:   "delete files and directories after confirmation",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.Operator.Delete(cmd.Context(), args)
		},
	}
}
