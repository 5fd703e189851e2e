// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package claims_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/claims"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

var _ support.Dispatcher[string, claims.Call[string]] = claims.New[string, string]()

func TestNoClaims(t *testing.T) {
	p := claims.New[string, string]()

	_, ok := p.Claim("hash of a private id")
	assert.False(t, ok, "unexpected claim")
	assert.Equal(t, 0, p.Count(), "wrong count")
}

func TestCreateClaim(t *testing.T) {
	p := claims.New[string, string]()

	err := p.CreateClaim("alice", "x")
	assert.Nil(t, err, "create failed")

	err = p.CreateClaim("bob", "x")
	assert.Equal(t, fault.ErrContentAlreadyClaimed, err, "duplicate claim accepted")

	// also fails for the existing owner
	err = p.CreateClaim("alice", "x")
	assert.Equal(t, fault.ErrContentAlreadyClaimed, err, "repeat claim accepted")

	owner, ok := p.Claim("x")
	assert.True(t, ok, "claim missing")
	assert.Equal(t, "alice", owner, "owner changed")
	assert.Equal(t, 1, p.Count(), "wrong count")
}

func TestRevokeClaim(t *testing.T) {
	p := claims.New[string, string]()

	err := p.RevokeClaim("alice", "x")
	assert.Equal(t, fault.ErrClaimNotFound, err, "revoke of missing claim")

	err = p.CreateClaim("alice", "x")
	assert.Nil(t, err, "create failed")

	err = p.RevokeClaim("bob", "x")
	assert.Equal(t, fault.ErrNotClaimOwner, err, "revoke by non-owner")

	owner, ok := p.Claim("x")
	assert.True(t, ok, "claim removed by non-owner")
	assert.Equal(t, "alice", owner, "owner changed")

	err = p.RevokeClaim("alice", "x")
	assert.Nil(t, err, "revoke by owner failed")

	_, ok = p.Claim("x")
	assert.False(t, ok, "claim still present")

	// content is free again
	err = p.CreateClaim("bob", "x")
	assert.Nil(t, err, "create after revoke failed")
	owner, _ = p.Claim("x")
	assert.Equal(t, "bob", owner, "wrong new owner")
}

// content can be any ordered type
type fingerprint string

func TestDispatch(t *testing.T) {
	p := claims.New[string, fingerprint]()
	content := fingerprint("01020304")

	calls := []struct {
		caller string
		call   claims.Call[fingerprint]
		err    error
	}{
		{"bob", claims.RevokeClaim[fingerprint]{Content: content}, fault.ErrClaimNotFound},
		{"alice", claims.CreateClaim[fingerprint]{Content: content}, nil},
		{"bob", claims.CreateClaim[fingerprint]{Content: content}, fault.ErrContentAlreadyClaimed},
		{"bob", &claims.CreateClaim[fingerprint]{Content: content}, fault.ErrInvalidCall},
		{"bob", claims.RevokeClaim[fingerprint]{Content: content}, fault.ErrNotClaimOwner},
		{"alice", &claims.RevokeClaim[fingerprint]{Content: content}, fault.ErrInvalidCall},
		{"alice", claims.RevokeClaim[fingerprint]{Content: content}, nil},
		{"alice", nil, fault.ErrInvalidCall},
	}

	for i, item := range calls {
		err := p.Dispatch(item.caller, item.call)
		assert.Equal(t, item.err, err, "%d: wrong dispatch result", i)
	}
	assert.Equal(t, 0, p.Count(), "claims left over")
}
