// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
)

const (
	LogCategory = "testing"
)

// Accounts used throughout the tests
const (
	Alice    = "Alice"
	Bob      = "Bob"
	Charlie  = "Charlie"
	Stranger = "Stranger"
	X        = "X"
)

var logDirectory string

// SetupTestLogger - start logging into a temporary directory
func SetupTestLogger() {
	dir, err := os.MkdirTemp("", "palletd-testing-")
	if nil != err {
		fmt.Println("create log dir with error: ", err)
		return
	}
	logDirectory = dir

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	if "" == logDirectory {
		return
	}
	err := os.RemoveAll(logDirectory)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
	logDirectory = ""
}
