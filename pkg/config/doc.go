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

// Package config loads the rule tables and policy settings from a YAML or
// HCL file. The tables are the user-extensible configuration surface of
// the dispatcher: user rules are evaluated before the built-in defaults,
// so a user entry can shadow a default one. Tables are loaded once at
// startup and never mutated at runtime.
package config
