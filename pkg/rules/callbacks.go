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

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

var (
	callbackMu sync.RWMutex
	callbacks  = map[string]CallbackFunc{}
)

// RegisterCallback registers a named built-in callback so configuration
// files can reference it by name.
func RegisterCallback(name string, fn CallbackFunc) {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	callbacks[name] = fn
}

// LookupCallback returns the callback registered under name.
func LookupCallback(name string) (Callback, error) {
	callbackMu.RLock()
	defer callbackMu.RUnlock()
	fn, ok := callbacks[name]
	if !ok {
		return Callback{}, errors.Errorf("unknown callback %q", name)
	}
	return Callback{Name: name, Fn: fn}, nil
}

func init() {
	RegisterCallback("decompress", DecompressGzip)
}

// DecompressGzip decompresses a gzip file in place: foo.txt.gz becomes
// foo.txt and the compressed original is removed. This is done in process
// because the replace-the-source step is too structural to express as a
// single shell command line.
func DecompressGzip(abs, rel string) error {
	target := strings.TrimSuffix(strings.TrimSuffix(abs, ".gz"), ".z")
	if target == abs {
		return errors.Errorf("%s: not a gzip file name", rel)
	}

	src, err := os.Open(abs)
	if err != nil {
		return errors.Errorf("opening %s: %w", rel, err)
	}
	defer src.Close()

	zr, err := gzip.NewReader(src)
	if err != nil {
		return errors.Errorf("reading gzip header of %s: %w", rel, err)
	}
	defer zr.Close()

	info, err := src.Stat()
	if err != nil {
		return errors.Errorf("stat %s: %w", rel, err)
	}

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(dst, zr); err != nil {
		dst.Close()
		os.Remove(target)
		return errors.Errorf("decompressing %s: %w", rel, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return errors.Errorf("closing %s: %w", target, err)
	}

	if err := os.Remove(abs); err != nil {
		return errors.Errorf("removing %s: %w", rel, err)
	}
	return nil
}
