// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package claims - proof of existence
//
// an account claims a piece of content (normally the hash of a
// document); each content has at most one owner and only that owner
// may revoke the claim
package claims

import (
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

// Pallet - content → owner
type Pallet[A support.AccountId, C support.Content] struct {
	claims map[C]A
}

// New - no claims
func New[A support.AccountId, C support.Content]() *Pallet[A, C] {
	return &Pallet[A, C]{
		claims: make(map[C]A),
	}
}

// Claim - the owner of some content, false if unclaimed
func (p *Pallet[A, C]) Claim(content C) (A, bool) {
	owner, ok := p.claims[content]
	return owner, ok
}

// Count - number of live claims
func (p *Pallet[A, C]) Count() int {
	return len(p.claims)
}

// CreateClaim - record the caller as owner of unclaimed content
func (p *Pallet[A, C]) CreateClaim(caller A, content C) error {
	if _, ok := p.claims[content]; ok {
		return fault.ErrContentAlreadyClaimed
	}
	p.claims[content] = caller
	return nil
}

// RevokeClaim - remove a claim held by the caller
func (p *Pallet[A, C]) RevokeClaim(caller A, content C) error {
	owner, ok := p.claims[content]
	if !ok {
		return fault.ErrClaimNotFound
	}
	if owner != caller {
		return fault.ErrNotClaimOwner
	}
	delete(p.claims, content)
	return nil
}
