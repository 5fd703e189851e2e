// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"github.com/bitmark-inc/palletd/fault"
)

// Counter - type to denote a counter that can be synchronously increments or decremented
// just a 64 bit unsigned integer
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Add - add n to a counter, returns new value
func (ic *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64((*uint64)(ic), n)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return ic.Uint64() == 0
}

// Next - the successor of an unsigned value
//
// block numbers and nonces never wrap: reaching the maximum value of
// the type is an unrecoverable invariant violation so this panics
// (after logging through fault) rather than returning zero
func Next[T constraints.Unsigned](value T) T {
	next := value + 1
	if next < value {
		fault.Panicf("counter overflow at: %d", value)
	}
	return next
}
