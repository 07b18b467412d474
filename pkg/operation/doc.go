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

// Package operation ties the dispatcher together: the caller-facing
// view, print, unpack, extract, list, delete and copy operations over
// one or more marked files. Batches run strictly sequentially, one entry
// fully completed or failed before the next begins, and always finish a
// full pass with an aggregate summary rather than aborting on the first
// error.
package operation
