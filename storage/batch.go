// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/palletd/fault"
)

// Batch - a group of writes applied together
type Batch struct {
	batch leveldb.Batch
}

// NewBatch - start an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Put - queue a key/value pair for a pool
func (b *Batch) Put(p *PoolHandle, key []byte, value []byte) {
	b.batch.Put(p.prefixKey(key), value)
}

// Delete - queue removal of a key from a pool
func (b *Batch) Delete(p *PoolHandle, key []byte) {
	b.batch.Delete(p.prefixKey(key))
}

// Len - number of queued writes
func (b *Batch) Len() int {
	return b.batch.Len()
}

// Commit - write all queued items atomically
func (b *Batch) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	err := poolData.database.Write(&b.batch, nil)
	b.batch.Reset()
	return err
}
