// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/node"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

func memstats() {

	log := logger.New("memory")

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		text, err := json.Marshal(m)
		if nil != err {
			log.Errorf("marshal error: %s", err)
		} else {
			log.Infof("stats: %s", text)
		}
		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		s := m.Sys / mega
		log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, s)

		time.Sleep(statsDelay)
	}
}

// j is nil when running without a journal
func nodestats(n *node.Node, j *journal.Journal) {

	log := logger.New("stats")

	for {
		info, err := n.Info()
		if nil != err {
			log.Errorf("info error: %s", err)
		} else {
			log.Infof("block: %d  blocks: %d  extrinsics: %d  failures: %d  rejected: %d",
				info.BlockNumber, info.Blocks, info.Extrinsics, info.Failures, info.Rejected)
		}
		if nil != j {
			blocks, reports := j.Counts()
			log.Infof("journal: blocks: %d  reports: %d", blocks, reports)
		}

		time.Sleep(statsDelay)
	}
}
