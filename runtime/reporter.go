// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/logger"
)

// Reporter - sink for extrinsics that failed to dispatch
type Reporter interface {
	Report(blockNumber BlockNumber, index int, err error)
}

// ReporterFunc - adapt a function to a Reporter
type ReporterFunc func(blockNumber BlockNumber, index int, err error)

// Report - call the function
func (f ReporterFunc) Report(blockNumber BlockNumber, index int, err error) {
	f(blockNumber, index, err)
}

// Discard - a reporter that drops everything
var Discard Reporter = ReporterFunc(func(BlockNumber, int, error) {})

// LogReporter - write failures to a logger channel
type LogReporter struct {
	log *logger.L
}

// NewLogReporter - reporter on the given logger channel
func NewLogReporter(log *logger.L) *LogReporter {
	return &LogReporter{
		log: log,
	}
}

// Report - log one failure
func (l *LogReporter) Report(blockNumber BlockNumber, index int, err error) {
	l.log.Warnf("extrinsic error: block: %d  extrinsic: %d  error: %s", blockNumber, index, err)
}

// Reporters - fan out to several reporters in order
type Reporters []Reporter

// Report - pass a failure to every reporter
func (rs Reporters) Report(blockNumber BlockNumber, index int, err error) {
	for _, r := range rs {
		r.Report(blockNumber, index, err)
	}
}
