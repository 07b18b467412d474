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

package rules

// Built-in tables for the common Unix archivers and printers. User
// configuration is prepended to these, so user rules take precedence.

// DefaultViewTable returns the built-in view rules. The catch-all pager
// rule must stay last.
func DefaultViewTable() *Table {
	return NewTable("view",
		Rule{MustPattern(`\.(gz|z|Z)$`), Template(`gzip -dc %s | ${PAGER:-less}`)},
		Rule{MustPattern(`.`), Template(`${PAGER:-less} %s`)},
	)
}

// DefaultPrintTable returns the built-in print rules.
func DefaultPrintTable() *Table {
	return NewTable("print",
		Rule{MustPattern(`\.(gz|z|Z)$`), Template(`gzip -dc %s | lpr`)},
		Rule{MustPattern(`.`), Template(`lpr %s`)},
	)
}

// DefaultCompactPrintTable returns the built-in compact-print rules.
func DefaultCompactPrintTable() *Table {
	return NewTable("compact-print",
		Rule{MustPattern(`\.(gz|z|Z)$`), Template(`gzip -dc %s | pr -f | lpr`)},
		Rule{MustPattern(`.`), Template(`pr -f %s | lpr`)},
	)
}

// DefaultUnpackTable returns the built-in unpack rules.
func DefaultUnpackTable() *Table {
	return NewTable("unpack",
		Rule{MustPattern(`\.(tar\.gz|tgz)$`), Argv{"tar", "xzvf"}},
		Rule{MustPattern(`\.tar$`), Argv{"tar", "xvf"}},
		Rule{MustPattern(`\.zip$`), Argv{"unzip", "-o"}},
		Rule{MustPattern(`\.arc$`), Template(`arc x %s`)},
		Rule{MustPattern(`\.zoo$`), Template(`zoo x. %s`)},
		Rule{MustPattern(`\.(gz|z)$`), mustCallback("decompress")},
		Rule{MustPattern(`\.Z$`), Template(`uncompress %s`)},
	)
}

// DefaultExtractTable returns the built-in extract rules. These produce
// the command line a user may edit before it runs.
func DefaultExtractTable() *Table {
	return NewTable("extract",
		Rule{MustPattern(`\.(tar\.gz|tgz)$`), Template(`tar xzvf %s`)},
		Rule{MustPattern(`\.tar$`), Template(`tar xvf %s`)},
		Rule{MustPattern(`\.zip$`), Template(`unzip %s`)},
		Rule{MustPattern(`\.arc$`), Template(`arc x %s`)},
		Rule{MustPattern(`\.zoo$`), Template(`zoo x. %s`)},
		Rule{MustPattern(`\.(gz|z)$`), Template(`gzip -d %s`)},
	)
}

// DefaultListTable returns the built-in archive-listing rules.
func DefaultListTable() *Table {
	return NewTable("list",
		Rule{MustPattern(`\.(tar\.gz|tgz)$`), Argv{"tar", "tzvf"}},
		Rule{MustPattern(`\.tar$`), Argv{"tar", "tvf"}},
		Rule{MustPattern(`\.zip$`), Argv{"zipinfo"}},
		Rule{MustPattern(`\.arc$`), Template(`arc l %s`)},
		Rule{MustPattern(`\.zoo$`), Template(`zoo l %s`)},
	)
}

// DefaultArchiveCopyTable returns the built-in archive-copy rules. The
// arc and zoo formats only know how to add to an archive, which is what
// forces the remove-then-append fallback in the target resolver.
func DefaultArchiveCopyTable() *ArchiveTable {
	t, err := NewArchiveTable(
		ArchiveRule{MustPattern(`\.(tar\.gz|tgz)$`), nil, Argv{"tar", "czvf"}},
		ArchiveRule{MustPattern(`\.tar$`), Argv{"tar", "rvf"}, Argv{"tar", "cvf"}},
		ArchiveRule{MustPattern(`\.zip$`), Argv{"zip", "-qr"}, Argv{"zip", "-qr"}},
		ArchiveRule{MustPattern(`\.arc$`), Argv{"arc", "a"}, nil},
		ArchiveRule{MustPattern(`\.zoo$`), Argv{"zoo", "a"}, nil},
	)
	if err != nil {
		panic(err)
	}
	return t
}

func mustCallback(name string) Callback {
	cb, err := LookupCallback(name)
	if err != nil {
		panic(err)
	}
	return cb
}
