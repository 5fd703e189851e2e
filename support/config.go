// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package support

import (
	"golang.org/x/exp/constraints"
)

// AccountId - any totally ordered, copyable identifier
type AccountId interface {
	constraints.Ordered
}

// BlockNumber - an unsigned counter with zero value and increment
type BlockNumber interface {
	constraints.Unsigned
}

// Nonce - an unsigned per-account counter
type Nonce interface {
	constraints.Unsigned
}

// Balance - an unsigned amount with checked arithmetic, see
// CheckedAdd and CheckedSub
type Balance interface {
	constraints.Unsigned
}

// Content - any totally ordered key that can be claimed
type Content interface {
	constraints.Ordered
}

// CheckedAdd - a + b, false if the result would wrap
func CheckedAdd[T Balance](a T, b T) (T, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckedSub - a - b, false if the result would go below zero
func CheckedSub[T Balance](a T, b T) (T, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
