// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	items := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/var/lib/palletd", "data", "/var/lib/palletd/data"},
		{"/var/lib/palletd", "./log/../data", "/var/lib/palletd/data"},
		{"/var/lib/palletd", "/tmp/blocks", "/tmp/blocks"},
		{"/var/lib/palletd", "/tmp//blocks/", "/tmp/blocks"},
	}

	for i, item := range items {
		actual := util.EnsureAbsolute(item.directory, item.path)
		assert.Equal(t, item.expected, actual, "%d: path", i)
	}
}

func TestEnsureDirectory(t *testing.T) {
	dir := t.TempDir()

	path, err := util.EnsureDirectory(dir, "a/b")
	assert.Nil(t, err, "create error")
	assert.Equal(t, filepath.Join(dir, "a", "b"), path, "path")

	info, err := os.Stat(path)
	assert.Nil(t, err, "stat error")
	assert.True(t, info.IsDir(), "is directory")

	// already present
	again, err := util.EnsureDirectory(dir, "a/b")
	assert.Nil(t, err, "existing error")
	assert.Equal(t, path, again, "existing path")

	fileName := filepath.Join(dir, "plain")
	assert.Nil(t, os.WriteFile(fileName, []byte("x"), 0o600), "write error")

	_, err = util.EnsureDirectory(dir, "plain")
	assert.Equal(t, fault.ErrNotADirectory, err, "plain file")
}
