// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/fixtures"
	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/node/mocks"
	"github.com/bitmark-inc/palletd/runtime"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func genesis() node.Genesis {
	return node.Genesis{
		fixtures.Alice: 100,
	}
}

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

func TestExecuteBlock(t *testing.T) {
	n := node.New(genesis(), nil)

	receipt, err := n.ExecuteBlock(blockOne())
	assert.Nil(t, err, "execute error")
	assert.Equal(t, runtime.BlockNumber(1), receipt.Number, "receipt number")
	assert.Equal(t, 4, receipt.Extrinsics, "receipt extrinsics")
	assert.Equal(t, []node.Failure{{Index: 2, Error: fault.ErrInsufficientFunds.Error()}}, receipt.Failures, "failures")
	assert.Nil(t, receipt.Digests, "digests without recorder")

	assert.Equal(t, runtime.Balance(21), n.Balance(fixtures.Alice), "alice")
	assert.Equal(t, runtime.Balance(39), n.Balance(fixtures.Bob), "bob")
	assert.Equal(t, runtime.Balance(30), n.Balance(fixtures.Charlie), "charlie")
	assert.Equal(t, runtime.Balance(10), n.Balance(fixtures.X), "x")
	assert.Equal(t, runtime.Nonce(2), n.Nonce(fixtures.Alice), "alice nonce")
	assert.Equal(t, runtime.Nonce(1), n.Nonce(fixtures.Stranger), "stranger nonce")

	info, err := n.Info()
	assert.Nil(t, err, "info error")
	assert.Equal(t, runtime.BlockNumber(1), info.BlockNumber, "info block number")
	assert.Equal(t, runtime.Balance(100), info.TotalIssuance, "info issuance")
	assert.Equal(t, 4, info.Accounts, "info accounts")
	assert.Equal(t, uint64(1), info.Blocks, "info blocks")
	assert.Equal(t, uint64(4), info.Extrinsics, "info extrinsics")
	assert.Equal(t, uint64(1), info.Failures, "info failures")
	assert.Equal(t, uint64(0), info.Rejected, "info rejected")
}

func TestExecuteBlockMismatch(t *testing.T) {
	n := node.New(genesis(), nil)

	block := blockOne()
	block.Header.Number = 2

	_, err := n.ExecuteBlock(block)
	assert.True(t, errors.Is(err, fault.ErrBlockNumberMismatch), "mismatch")
	assert.Equal(t, runtime.BlockNumber(0), n.BlockNumber(), "block number moved")
	assert.Equal(t, runtime.Balance(100), n.Balance(fixtures.Alice), "balance moved")

	info, err := n.Info()
	assert.Nil(t, err, "info error")
	assert.Equal(t, uint64(1), info.Rejected, "rejected count")
	assert.Equal(t, uint64(0), info.Blocks, "block count")
}

func TestRecorder(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	block := blockOne()
	digests := journal.BlockDigests{}
	digests.Digest[0] = 0x42

	recorder := mocks.NewMockRecorder(ctl)
	recorder.EXPECT().Report(runtime.BlockNumber(1), 2, fault.ErrInsufficientFunds).Times(1)
	recorder.EXPECT().Record(block).Return(digests, nil).Times(1)

	n := node.New(genesis(), recorder)
	receipt, err := n.ExecuteBlock(block)
	assert.Nil(t, err, "execute error")
	assert.Equal(t, &digests, receipt.Digests, "digests")
}

func TestRecorderFailureKeepsState(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	recorder := mocks.NewMockRecorder(ctl)
	recorder.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	recorder.EXPECT().Record(gomock.Any()).Return(journal.BlockDigests{}, errors.New("disk full")).Times(1)

	n := node.New(genesis(), recorder)
	receipt, err := n.ExecuteBlock(blockOne())
	assert.Nil(t, err, "execute error")
	assert.Nil(t, receipt.Digests, "digests")
	assert.Equal(t, runtime.BlockNumber(1), n.BlockNumber(), "block number")
}

func TestClaim(t *testing.T) {
	n := node.New(nil, nil)

	_, err := n.Claim("hello")
	assert.Equal(t, fault.ErrClaimNotFound, err, "missing claim")

	err = n.Dispatch(fixtures.Alice, runtime.CreateClaim("hello"))
	assert.Nil(t, err, "create claim")

	owner, err := n.Claim("hello")
	assert.Nil(t, err, "claim error")
	assert.Equal(t, fixtures.Alice, owner, "owner")
	assert.Equal(t, runtime.Nonce(0), n.Nonce(fixtures.Alice), "dispatch must not touch nonce")
}

func TestConcurrentReaders(t *testing.T) {
	n := node.New(genesis(), nil)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j += 1 {
				_ = n.Balance(fixtures.Alice)
				_, _ = n.Info()
			}
		}()
	}

	_, err := n.ExecuteBlock(blockOne())
	wg.Wait()

	assert.Nil(t, err, "execute error")
	assert.Equal(t, runtime.Balance(21), n.Balance(fixtures.Alice), "alice")
}
