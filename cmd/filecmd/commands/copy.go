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

// NewCopyCmd copies files to a directory, a plain target or into an
// archive when the destination name matches an archive rule.
func NewCopyCmd(ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "copy <source>... <dest>",
		Aliases: []string{"cp"},
		Short:   "copy files, treating matching archives as directories",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[len(args)-1]
			return ro.Operator.Copy(cmd.Context(), args[:len(args)-1], dest)
		},
	}
}
