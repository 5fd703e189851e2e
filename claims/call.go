// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package claims

import (
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

// Call - the operations of this pallet that can be dispatched
type Call[C support.Content] interface {
	claimsCall()
}

// CreateClaim - claim Content for the caller
type CreateClaim[C support.Content] struct {
	Content C `json:"content"`
}

// RevokeClaim - give up the caller's claim on Content
type RevokeClaim[C support.Content] struct {
	Content C `json:"content"`
}

func (CreateClaim[C]) claimsCall() {}
func (RevokeClaim[C]) claimsCall() {}

// Dispatch - route a call to the matching operation
//
// only value calls are routed, a pointer is an invalid call
func (p *Pallet[A, C]) Dispatch(caller A, call Call[C]) error {
	switch c := call.(type) {
	case CreateClaim[C]:
		return p.CreateClaim(caller, c.Content)
	case RevokeClaim[C]:
		return p.RevokeClaim(caller, c.Content)
	default:
		return fault.ErrInvalidCall
	}
}
