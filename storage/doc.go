// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk journal
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// The journal is write mostly: runtime state is never rebuilt from it.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. index        = extrinsic position in block as big endian uint32 (4 bytes)
//
// Blocks:
//
//   B ++ block number          - executed blocks
//                                data: packed block (see blockrecord)
//   D ++ block number          - block digest
//                                data: SHA3-256(packed block) ++ extrinsics merkle root
//
// Reports:
//
//   R ++ block number ++ index - failed extrinsic
//                                data: error text
package storage
