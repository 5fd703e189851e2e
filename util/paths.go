// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/palletd/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureDirectory - absolute path of a directory, created if missing
//
// an existing non-directory at the path is an error
func EnsureDirectory(directory string, name string) (string, error) {
	path := EnsureAbsolute(directory, name)

	info, err := os.Stat(path)
	if nil == err {
		if !info.IsDir() {
			return "", fault.ErrNotADirectory
		}
		return path, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.MkdirAll(path, 0700); nil != err {
		return "", err
	}
	return path, nil
}
