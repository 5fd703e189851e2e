// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - persistent record of executed blocks and their
// failed extrinsics
package journal

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/merkle"
	"github.com/bitmark-inc/palletd/runtime"
	"github.com/bitmark-inc/palletd/storage"
)

// Journal - writes to the storage pools
//
// storage must be initialised before any method is called
type Journal struct {
	sync.Mutex
	log     *logger.L
	reports counter.Counter
	blocks  counter.Counter

	// failures of blocks not yet recorded
	buffered []pendingReport
}

type pendingReport struct {
	blockNumber runtime.BlockNumber
	index       uint32
	text        string
}

// Report - one failed extrinsic read back from the journal
type Report struct {
	Index uint32 `json:"index"`
	Error string `json:"error"`
}

// BlockDigests - identity of a recorded block
type BlockDigests struct {
	Digest         merkle.Digest `json:"digest"`
	ExtrinsicsRoot merkle.Digest `json:"extrinsicsRoot"`
}

// check the journal can be used as a runtime reporter
var _ runtime.Reporter = (*Journal)(nil)

// New - create a journal
func New() *Journal {
	return &Journal{
		log: logger.New("journal"),
	}
}

// Report - hold one extrinsic failure until its block is recorded
func (j *Journal) Report(blockNumber runtime.BlockNumber, index int, err error) {
	j.Lock()
	defer j.Unlock()

	j.buffered = append(j.buffered, pendingReport{
		blockNumber: blockNumber,
		index:       uint32(index),
		text:        err.Error(),
	})
	j.log.Debugf("report: block: %d  extrinsic: %d  error: %s", blockNumber, index, err)
}

// queue the buffered failures of one block in place of any stored for
// the same number and drop them from the buffer
func (j *Journal) reportsBatch(batch *storage.Batch, blockNumber runtime.BlockNumber) (int, error) {
	err := storage.Pool.Reports.Map(storage.BlockKey(blockNumber), func(key []byte, value []byte) error {
		batch.Delete(storage.Pool.Reports, key)
		return nil
	})
	if nil != err {
		return 0, err
	}

	count := 0
	remaining := j.buffered[:0]
	for _, r := range j.buffered {
		if r.blockNumber != blockNumber {
			remaining = append(remaining, r)
			continue
		}
		batch.Put(storage.Pool.Reports, storage.ReportKey(r.blockNumber, r.index), []byte(r.text))
		count += 1
	}
	j.buffered = remaining
	return count, nil
}

// Record - persist an executed block with its digests and failures
//
// failures are written even when the block itself cannot be packed
func (j *Journal) Record(block runtime.Block) (BlockDigests, error) {
	j.Lock()
	defer j.Unlock()

	number := block.Header.Number

	batch := storage.NewBatch()
	count, err := j.reportsBatch(batch, number)
	if nil != err {
		return BlockDigests{}, err
	}

	digests, err := blockBatch(batch, block)
	if nil != err {
		if commitErr := batch.Commit(); nil != commitErr {
			j.log.Errorf("block: %d  reports commit error: %s", number, commitErr)
		} else {
			j.reports.Add(uint64(count))
		}
		return BlockDigests{}, err
	}

	err = batch.Commit()
	if nil != err {
		return BlockDigests{}, err
	}

	j.reports.Add(uint64(count))
	j.blocks.Increment()
	j.log.Infof("recorded block: %d  digest: %s  extrinsics: %d  failures: %d", number, digests.Digest, len(block.Extrinsics), count)
	return digests, nil
}

// queue the packed block and its digests
func blockBatch(batch *storage.Batch, block runtime.Block) (BlockDigests, error) {
	packed, err := blockrecord.Pack(block)
	if nil != err {
		return BlockDigests{}, err
	}
	root, err := blockrecord.ExtrinsicsRoot(block)
	if nil != err {
		return BlockDigests{}, err
	}

	digests := BlockDigests{
		Digest:         packed.Digest(),
		ExtrinsicsRoot: root,
	}

	value := make([]byte, 0, 2*merkle.DigestLength)
	value = append(value, digests.Digest[:]...)
	value = append(value, digests.ExtrinsicsRoot[:]...)

	key := storage.BlockKey(block.Header.Number)
	batch.Put(storage.Pool.Blocks, key, packed)
	batch.Put(storage.Pool.Digests, key, value)
	return digests, nil
}

// Reset - remove every block, digest and failure
//
// returns the number of records removed
func (j *Journal) Reset() (int, error) {
	j.Lock()
	defer j.Unlock()

	j.buffered = nil

	batch := storage.NewBatch()
	for _, p := range []*storage.PoolHandle{storage.Pool.Blocks, storage.Pool.Digests, storage.Pool.Reports} {
		pool := p
		err := pool.Map(nil, func(key []byte, value []byte) error {
			batch.Delete(pool, key)
			return nil
		})
		if nil != err {
			return 0, err
		}
	}

	count := batch.Len()
	if 0 == count {
		return 0, nil
	}
	err := batch.Commit()
	if nil != err {
		return 0, err
	}
	j.log.Infof("reset: removed: %d records", count)
	return count, nil
}

// Block - read back a recorded block
func Block(number runtime.BlockNumber) (runtime.Block, error) {
	packed := storage.Pool.Blocks.Get(storage.BlockKey(number))
	if nil == packed {
		return runtime.Block{}, fault.ErrBlockNotFound
	}
	return blockrecord.PackedBlock(packed).Unpack()
}

// Digests - read back the digests of a recorded block
func Digests(number runtime.BlockNumber) (BlockDigests, error) {
	value := storage.Pool.Digests.Get(storage.BlockKey(number))
	if nil == value {
		return BlockDigests{}, fault.ErrBlockNotFound
	}
	if 2*merkle.DigestLength != len(value) {
		return BlockDigests{}, fault.ErrTruncatedRecord
	}

	d := BlockDigests{}
	copy(d.Digest[:], value[:merkle.DigestLength])
	copy(d.ExtrinsicsRoot[:], value[merkle.DigestLength:])
	return d, nil
}

// Reports - all failures recorded for a block, in extrinsic order
func Reports(number runtime.BlockNumber) ([]Report, error) {
	reports := make([]Report, 0)
	err := storage.Pool.Reports.Map(storage.BlockKey(number), func(key []byte, value []byte) error {
		if 12 != len(key) {
			return fault.ErrTruncatedRecord
		}
		reports = append(reports, Report{
			Index: binary.BigEndian.Uint32(key[8:]),
			Error: string(value),
		})
		return nil
	})
	return reports, err
}

// LastBlockNumber - highest recorded block, zero if none
func LastBlockNumber() runtime.BlockNumber {
	element, found := storage.Pool.Blocks.LastElement()
	if !found || 8 != len(element.Key) {
		return 0
	}
	return binary.BigEndian.Uint64(element.Key)
}

// Counts - number of blocks recorded and reports written by this journal
func (j *Journal) Counts() (blocks uint64, reports uint64) {
	return j.blocks.Uint64(), j.reports.Uint64()
}
