// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/fixtures"
	"github.com/bitmark-inc/palletd/runtime"
	"github.com/bitmark-inc/palletd/runtime/mocks"
)

// the first block from the reference scenario
func blockOne() runtime.Block {
	return runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.Bob, 69)},
			{Caller: fixtures.Bob, Call: runtime.Transfer(fixtures.Charlie, 30)},
			{Caller: fixtures.Stranger, Call: runtime.Transfer(fixtures.Charlie, 30)},
			{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.X, 10)},
		},
	}
}

// a block of claim operations following block one
func blockTwo() runtime.Block {
	const (
		bobHash   = "hash of bob: hello! this is for bob"
		aliceHash = "hash of alice: hello! this is for Alice"
		noHash    = "No hash for this claim"
	)
	return runtime.Block{
		Header: runtime.Header{Number: 2},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Bob, Call: runtime.CreateClaim(bobHash)},
			{Caller: fixtures.Alice, Call: runtime.CreateClaim(aliceHash)},
			{Caller: fixtures.Alice, Call: runtime.RevokeClaim(noHash)},
			{Caller: fixtures.Alice, Call: runtime.CreateClaim(noHash)},
			{Caller: fixtures.Alice, Call: runtime.RevokeClaim(noHash)},
			{Caller: fixtures.Bob, Call: runtime.CreateClaim(aliceHash)},
		},
	}
}

func TestExecuteBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	reporter := mocks.NewMockReporter(ctl)
	reporter.EXPECT().Report(uint64(1), 2, fault.ErrInsufficientFunds).Times(1)

	r := runtime.New(reporter)
	r.SetBalance(fixtures.Alice, 100)

	err := r.ExecuteBlock(blockOne())
	assert.Nil(t, err, "execute block failed")

	assert.Equal(t, runtime.Balance(21), r.Balance(fixtures.Alice), "wrong alice balance")
	assert.Equal(t, runtime.Balance(39), r.Balance(fixtures.Bob), "wrong bob balance")
	assert.Equal(t, runtime.Balance(30), r.Balance(fixtures.Charlie), "wrong charlie balance")
	assert.Equal(t, runtime.Balance(10), r.Balance(fixtures.X), "wrong X balance")
	assert.Equal(t, runtime.Balance(0), r.Balance(fixtures.Stranger), "wrong stranger balance")

	assert.Equal(t, runtime.BlockNumber(1), r.BlockNumber(), "wrong block number")

	assert.Equal(t, runtime.Nonce(2), r.Nonce(fixtures.Alice), "wrong alice nonce")
	assert.Equal(t, runtime.Nonce(1), r.Nonce(fixtures.Bob), "wrong bob nonce")
	assert.Equal(t, runtime.Nonce(1), r.Nonce(fixtures.Stranger), "failed extrinsic did not count")
	assert.Equal(t, runtime.Nonce(0), r.Nonce(fixtures.Charlie), "receiver nonce changed")
	assert.Equal(t, runtime.Nonce(0), r.Nonce(fixtures.X), "receiver nonce changed")

	total, ok := r.TotalIssuance()
	assert.True(t, ok, "total overflow")
	assert.Equal(t, runtime.Balance(100), total, "supply changed")
}

func TestExecuteClaimBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	reporter := mocks.NewMockReporter(ctl)
	gomock.InOrder(
		reporter.EXPECT().Report(uint64(1), 2, fault.ErrInsufficientFunds),
		reporter.EXPECT().Report(uint64(2), 2, fault.ErrClaimNotFound),
		reporter.EXPECT().Report(uint64(2), 5, fault.ErrContentAlreadyClaimed),
	)

	r := runtime.New(reporter)
	r.SetBalance(fixtures.Alice, 100)

	assert.Nil(t, r.ExecuteBlock(blockOne()), "block one failed")
	assert.Nil(t, r.ExecuteBlock(blockTwo()), "block two failed")

	assert.Equal(t, runtime.BlockNumber(2), r.BlockNumber(), "wrong block number")
	assert.Equal(t, 2, r.ClaimCount(), "wrong claim count")

	owner, ok := r.Claim("hash of alice: hello! this is for Alice")
	assert.True(t, ok, "alice claim missing")
	assert.Equal(t, fixtures.Alice, owner, "wrong owner")

	owner, ok = r.Claim("hash of bob: hello! this is for bob")
	assert.True(t, ok, "bob claim missing")
	assert.Equal(t, fixtures.Bob, owner, "wrong owner")

	_, ok = r.Claim("No hash for this claim")
	assert.False(t, ok, "revoked claim present")

	assert.Equal(t, runtime.Nonce(6), r.Nonce(fixtures.Alice), "wrong alice nonce")
	assert.Equal(t, runtime.Nonce(3), r.Nonce(fixtures.Bob), "wrong bob nonce")
}

// state visible through the read accessors
type snapshot struct {
	blockNumber runtime.BlockNumber
	balances    map[runtime.AccountId]runtime.Balance
	nonces      map[runtime.AccountId]runtime.Nonce
	claims      map[runtime.Content]runtime.AccountId
}

func takeSnapshot(r *runtime.Runtime, accounts []runtime.AccountId, contents []runtime.Content) snapshot {
	s := snapshot{
		blockNumber: r.BlockNumber(),
		balances:    make(map[runtime.AccountId]runtime.Balance),
		nonces:      make(map[runtime.AccountId]runtime.Nonce),
		claims:      make(map[runtime.Content]runtime.AccountId),
	}
	for _, a := range accounts {
		s.balances[a] = r.Balance(a)
		s.nonces[a] = r.Nonce(a)
	}
	for _, c := range contents {
		if owner, ok := r.Claim(c); ok {
			s.claims[c] = owner
		}
	}
	return s
}

func TestExecuteBlockNumberMismatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	reporter := mocks.NewMockReporter(ctl)
	reporter.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	r := runtime.New(reporter)
	r.SetBalance(fixtures.Alice, 100)
	assert.Nil(t, r.ExecuteBlock(blockOne()), "block one failed")
	assert.Nil(t, r.Dispatch(fixtures.Alice, runtime.CreateClaim("x")), "claim failed")

	accounts := []runtime.AccountId{fixtures.Alice, fixtures.Bob, fixtures.Charlie, fixtures.Stranger, fixtures.X}
	contents := []runtime.Content{"x", "y"}
	before := takeSnapshot(r, accounts, contents)

	for _, n := range []runtime.BlockNumber{0, 1, 3, 100} {
		block := runtime.Block{
			Header: runtime.Header{Number: n},
			Extrinsics: []runtime.Extrinsic{
				{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.Bob, 1)},
				{Caller: fixtures.Bob, Call: runtime.CreateClaim("y")},
				{Caller: fixtures.Alice, Call: runtime.RevokeClaim("x")},
			},
		}
		err := r.ExecuteBlock(block)
		assert.True(t, errors.Is(err, fault.ErrBlockNumberMismatch), "block %d: wrong error: %v", n, err)
		assert.True(t, fault.IsErrRecord(err), "block %d: not a record error", n)
		assert.Equal(t, before, takeSnapshot(r, accounts, contents), "block %d: state changed", n)
	}

	// the correct number is still accepted afterwards
	err := r.ExecuteBlock(runtime.Block{Header: runtime.Header{Number: 2}})
	assert.Nil(t, err, "empty block two failed")
	assert.Equal(t, runtime.BlockNumber(2), r.BlockNumber(), "wrong block number")
}

func TestNonceCountsFailures(t *testing.T) {
	var reported []int
	r := runtime.New(runtime.ReporterFunc(func(blockNumber runtime.BlockNumber, index int, err error) {
		assert.Equal(t, runtime.BlockNumber(1), blockNumber, "wrong block number")
		reported = append(reported, index)
	}))

	block := runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Stranger, Call: runtime.Transfer(fixtures.Bob, 1)},
			{Caller: fixtures.Stranger, Call: runtime.RevokeClaim("x")},
			{Caller: fixtures.Stranger, Call: nil},
			{Caller: fixtures.Stranger, Call: runtime.CreateClaim("x")},
		},
	}
	assert.Nil(t, r.ExecuteBlock(block), "execute failed")
	assert.Equal(t, []int{0, 1, 2}, reported, "wrong failures reported")
	assert.Equal(t, runtime.Nonce(4), r.Nonce(fixtures.Stranger), "wrong nonce")
}

func TestReporters(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m1 := mocks.NewMockReporter(ctl)
	m2 := mocks.NewMockReporter(ctl)
	gomock.InOrder(
		m1.EXPECT().Report(uint64(1), 0, fault.ErrInsufficientFunds),
		m2.EXPECT().Report(uint64(1), 0, fault.ErrInsufficientFunds),
	)

	reporters := runtime.Reporters{
		runtime.NewLogReporter(logger.New(fixtures.LogCategory)),
		m1,
		m2,
		runtime.Discard,
	}
	r := runtime.New(reporters)
	block := runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.Bob, 1)},
		},
	}
	assert.Nil(t, r.ExecuteBlock(block), "execute failed")
}
