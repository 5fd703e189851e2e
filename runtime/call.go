// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/palletd/balances"
	"github.com/bitmark-inc/palletd/claims"
	"github.com/bitmark-inc/palletd/fault"
)

// Call - one variant per pallet, each carrying that pallet's own call
//
// adding a pallet means adding a variant here and a case in Dispatch
type Call interface {
	runtimeCall()
}

// BalancesCall - a call routed to the balances pallet
type BalancesCall struct {
	Call balances.Call[AccountId, Balance]
}

// ClaimsCall - a call routed to the claims pallet
type ClaimsCall struct {
	Call claims.Call[Content]
}

func (BalancesCall) runtimeCall() {}
func (ClaimsCall) runtimeCall()   {}

// Transfer - shorthand for a balances transfer call
func Transfer(to AccountId, amount Balance) Call {
	return BalancesCall{
		Call: balances.Transfer[AccountId, Balance]{To: to, Amount: amount},
	}
}

// CreateClaim - shorthand for a claims create call
func CreateClaim(content Content) Call {
	return ClaimsCall{
		Call: claims.CreateClaim[Content]{Content: content},
	}
}

// RevokeClaim - shorthand for a claims revoke call
func RevokeClaim(content Content) Call {
	return ClaimsCall{
		Call: claims.RevokeClaim[Content]{Content: content},
	}
}

// Dispatch - route a call to the pallet that owns it
//
// the first error is returned verbatim; nothing is rolled back beyond
// what the pallet operation itself guarantees
func (r *Runtime) Dispatch(caller AccountId, call Call) error {
	switch c := call.(type) {
	case BalancesCall:
		return r.balances.Dispatch(caller, c.Call)
	case ClaimsCall:
		return r.claims.Dispatch(caller, c.Call)
	default:
		return fault.ErrInvalidCall
	}
}
