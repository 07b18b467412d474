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

package status

import (
	"github.com/fatih/color"
)

// FormatSummary renders the batch summary line: "<succeeded> of <total>
// done" when everything worked, "<failed> of <total> failed" otherwise.
func FormatSummary(succeeded, total int) string {
	failed := total - succeeded
	if failed == 0 {
		return color.New(color.FgGreen).Sprintf("%d of %d done", succeeded, total)
	}
	return color.New(color.FgRed).Sprintf("%d of %d failed", failed, total)
}
