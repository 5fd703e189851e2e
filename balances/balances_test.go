// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/balances"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

// check at compile time that the pallet can be used as a dispatcher
var _ support.Dispatcher[string, balances.Call[string, uint32]] = balances.New[string, uint32]()

func TestInitBalances(t *testing.T) {
	b := balances.New[string, uint32]()

	assert.Equal(t, uint32(0), b.Balance("alice"), "wrong initial balance")
	b.SetBalance("alice", 100)
	assert.Equal(t, uint32(100), b.Balance("alice"), "wrong balance after set")
	assert.Equal(t, uint32(0), b.Balance("bob"), "bob changed")

	b.SetBalance("alice", 7)
	assert.Equal(t, uint32(7), b.Balance("alice"), "set does not overwrite")
}

func TestTransfer(t *testing.T) {
	b := balances.New[string, uint32]()

	err := b.Transfer("alice", "bob", 100)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "transfer without funds")
	assert.Equal(t, uint32(0), b.Balance("alice"), "alice changed")
	assert.Equal(t, uint32(0), b.Balance("bob"), "bob changed")

	b.SetBalance("alice", 150)

	err = b.Transfer("alice", "bob", 100)
	assert.Nil(t, err, "transfer failed")
	assert.Equal(t, uint32(50), b.Balance("alice"), "wrong alice balance")
	assert.Equal(t, uint32(100), b.Balance("bob"), "wrong bob balance")

	// exact balance is allowed
	err = b.Transfer("alice", "bob", 50)
	assert.Nil(t, err, "transfer of whole balance failed")
	assert.Equal(t, uint32(0), b.Balance("alice"), "alice not emptied")
	assert.Equal(t, uint32(150), b.Balance("bob"), "wrong bob balance")
}

func TestTransferOverflow(t *testing.T) {
	b := balances.New[string, uint64]()
	b.SetBalance("alice", 10)
	b.SetBalance("bob", math.MaxUint64-5)

	err := b.Transfer("alice", "bob", 6)
	assert.Equal(t, fault.ErrBalanceOverflow, err, "overflow not detected")
	assert.Equal(t, uint64(10), b.Balance("alice"), "partial debit applied")
	assert.Equal(t, uint64(math.MaxUint64-5), b.Balance("bob"), "partial credit applied")

	err = b.Transfer("alice", "bob", 5)
	assert.Nil(t, err, "transfer to maximum failed")
	assert.Equal(t, uint64(math.MaxUint64), b.Balance("bob"), "wrong maximum balance")
}

func TestTransferConservesSupply(t *testing.T) {
	b := balances.New[string, uint64]()
	b.SetBalance("alice", 1000)
	b.SetBalance("bob", 20)
	b.SetBalance("charlie", 3)

	transfers := []struct {
		from   string
		to     string
		amount uint64
		err    error
	}{
		{"alice", "bob", 300, nil},
		{"bob", "charlie", 321, fault.ErrInsufficientFunds},
		{"bob", "charlie", 320, nil},
		{"charlie", "dave", 500, fault.ErrInsufficientFunds},
		{"charlie", "alice", 323, nil},
		{"dave", "alice", 1, fault.ErrInsufficientFunds},
		{"alice", "alice", 1023, nil},
		{"alice", "alice", 1024, fault.ErrInsufficientFunds},
		{"bob", "bob", 0, nil},
	}

	for i, item := range transfers {
		err := b.Transfer(item.from, item.to, item.amount)
		assert.Equal(t, item.err, err, "%d: wrong transfer result", i)

		total, ok := b.TotalIssuance()
		assert.True(t, ok, "%d: total overflow", i)
		assert.Equal(t, uint64(1023), total, "%d: supply changed", i)
	}

	assert.Equal(t, uint64(1023), b.Balance("alice"), "wrong alice balance")
	assert.Equal(t, uint64(0), b.Balance("bob"), "wrong bob balance")
	assert.Equal(t, uint64(0), b.Balance("charlie"), "wrong charlie balance")
	assert.Equal(t, uint64(0), b.Balance("dave"), "wrong dave balance")
	assert.Equal(t, []string{"alice", "bob", "charlie"}, b.Accounts(), "wrong account list")
}

func TestDispatch(t *testing.T) {
	b := balances.New[string, uint32]()
	b.SetBalance("alice", 100)

	err := b.Dispatch("alice", balances.Transfer[string, uint32]{To: "bob", Amount: 69})
	assert.Nil(t, err, "dispatch transfer failed")
	assert.Equal(t, uint32(31), b.Balance("alice"), "wrong alice balance")
	assert.Equal(t, uint32(69), b.Balance("bob"), "wrong bob balance")

	err = b.Dispatch("bob", balances.Transfer[string, uint32]{To: "alice", Amount: 70})
	assert.Equal(t, fault.ErrInsufficientFunds, err, "error not returned verbatim")

	err = b.Dispatch("alice", &balances.Transfer[string, uint32]{To: "bob", Amount: 1})
	assert.Equal(t, fault.ErrInvalidCall, err, "pointer call accepted")
	assert.Equal(t, uint32(31), b.Balance("alice"), "pointer call changed alice")
	assert.Equal(t, uint32(69), b.Balance("bob"), "pointer call changed bob")

	err = b.Dispatch("bob", nil)
	assert.Equal(t, fault.ErrInvalidCall, err, "nil call accepted")
}
