// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package system - the low level state every runtime needs: the
// current block number and a nonce for each account
package system

import (
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/support"
)

// Pallet - block number and per-account nonces
//
// an account that has never submitted an extrinsic has no entry and
// reads as zero
type Pallet[A support.AccountId, BN support.BlockNumber, N support.Nonce] struct {
	blockNumber BN
	nonce       map[A]N
}

// New - block number zero and no nonces
func New[A support.AccountId, BN support.BlockNumber, N support.Nonce]() *Pallet[A, BN, N] {
	return &Pallet[A, BN, N]{
		nonce: make(map[A]N),
	}
}

// BlockNumber - the number of the last executed block
func (p *Pallet[A, BN, N]) BlockNumber() BN {
	return p.blockNumber
}

// NextBlockNumber - the number the next block must carry
//
// panics if the block number is already at its maximum
func (p *Pallet[A, BN, N]) NextBlockNumber() BN {
	return counter.Next(p.blockNumber)
}

// IncBlockNumber - advance the block number by one
func (p *Pallet[A, BN, N]) IncBlockNumber() {
	p.blockNumber = counter.Next(p.blockNumber)
}

// Nonce - the number of extrinsics submitted by an account
func (p *Pallet[A, BN, N]) Nonce(who A) N {
	return p.nonce[who]
}

// IncNonce - count one more extrinsic for an account
func (p *Pallet[A, BN, N]) IncNonce(who A) {
	p.nonce[who] = counter.Next(p.nonce[who])
}
