// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balances - the ledger pallet
//
// holds a balance for each account and moves value between accounts
// with checked arithmetic; a transfer either updates both accounts or
// neither
package balances

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
)

// Pallet - account → balance, absent accounts read as zero
type Pallet[A support.AccountId, B support.Balance] struct {
	balances map[A]B
}

// New - empty ledger
func New[A support.AccountId, B support.Balance]() *Pallet[A, B] {
	return &Pallet[A, B]{
		balances: make(map[A]B),
	}
}

// SetBalance - overwrite a balance without any checks
//
// only for genesis setup, never reachable through dispatch
func (p *Pallet[A, B]) SetBalance(who A, amount B) {
	p.balances[who] = amount
}

// Balance - current balance of an account
func (p *Pallet[A, B]) Balance(who A) B {
	return p.balances[who]
}

// Transfer - move amount from caller to another account
//
// both new balances are computed before either is stored
func (p *Pallet[A, B]) Transfer(caller A, to A, amount B) error {
	callerBalance, ok := support.CheckedSub(p.Balance(caller), amount)
	if !ok {
		return fault.ErrInsufficientFunds
	}

	// a self transfer must see the debited balance, otherwise the
	// credit below would mint the amount
	toBalance := p.Balance(to)
	if to == caller {
		toBalance = callerBalance
	}
	toBalance, ok = support.CheckedAdd(toBalance, amount)
	if !ok {
		return fault.ErrBalanceOverflow
	}

	p.balances[caller] = callerBalance
	p.balances[to] = toBalance
	return nil
}

// Accounts - all accounts that have a balance entry, in order
func (p *Pallet[A, B]) Accounts() []A {
	accounts := maps.Keys(p.balances)
	slices.Sort(accounts)
	return accounts
}

// TotalIssuance - sum of all balances
//
// false if the sum does not fit the balance type
func (p *Pallet[A, B]) TotalIssuance() (B, bool) {
	total := B(0)
	for _, amount := range p.balances {
		sum, ok := support.CheckedAdd(total, amount)
		if !ok {
			return 0, false
		}
		total = sum
	}
	return total, true
}
