// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Map - run a function on all elements whose key starts with the given bytes
//
// iteration stops at the first error returned by f
func (p *PoolHandle) Map(start []byte, f func(key []byte, value []byte) error) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.database {
		return nil
	}

	maxRange := ldb_util.BytesPrefix(p.prefixKey(start))

	iter := p.database.NewIterator(maxRange, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
