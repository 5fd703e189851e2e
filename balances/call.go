// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances

import (
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

// Call - the operations of this pallet that can be dispatched
//
// the set is closed: only types in this package carry the marker
type Call[A support.AccountId, B support.Balance] interface {
	balancesCall()
}

// Transfer - move Amount from the caller to To
type Transfer[A support.AccountId, B support.Balance] struct {
	To     A `json:"to"`
	Amount B `json:"amount"`
}

func (Transfer[A, B]) balancesCall() {}

// Dispatch - route a call to the matching operation
//
// only value calls are routed, a pointer is an invalid call
func (p *Pallet[A, B]) Dispatch(caller A, call Call[A, B]) error {
	switch c := call.(type) {
	case Transfer[A, B]:
		return p.Transfer(caller, c.To, c.Amount)
	default:
		return fault.ErrInvalidCall
	}
}
