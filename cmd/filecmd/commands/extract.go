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

// NewExtractCmd shows the matched extraction command for editing before
// it runs.
func NewExtractCmd(ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "extract an archive, letting you edit the command first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.Operator.Extract(cmd.Context(), args[0])
		},
	}
}
