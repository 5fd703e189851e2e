// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"

	"github.com/bitmark-inc/palletd/balances"
	"github.com/bitmark-inc/palletd/claims"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/support"
	"github.com/bitmark-inc/palletd/system"
)

// Runtime - one instance of each pallet
type Runtime struct {
	system   *system.Pallet[AccountId, BlockNumber, Nonce]
	balances *balances.Pallet[AccountId, Balance]
	claims   *claims.Pallet[AccountId, Content]
	reporter Reporter
}

// check the runtime satisfies the generic dispatch contract
var _ support.Dispatcher[AccountId, Call] = (*Runtime)(nil)

// New - assemble a runtime at block zero with empty pallets
//
// dispatch failures inside a block are sent to reporter
func New(reporter Reporter) *Runtime {
	if nil == reporter {
		reporter = Discard
	}
	return &Runtime{
		system:   system.New[AccountId, BlockNumber, Nonce](),
		balances: balances.New[AccountId, Balance](),
		claims:   claims.New[AccountId, Content](),
		reporter: reporter,
	}
}

// ExecuteBlock - apply all extrinsics of the next block
//
// the only error returned is a block number mismatch, in which case
// no state has changed; extrinsic failures are reported and skipped
func (r *Runtime) ExecuteBlock(block Block) error {
	expected := r.system.NextBlockNumber()
	if block.Header.Number != expected {
		return fmt.Errorf("%w: expected: %d  actual: %d", fault.ErrBlockNumberMismatch, expected, block.Header.Number)
	}
	r.system.IncBlockNumber()

	for i, extrinsic := range block.Extrinsics {
		r.system.IncNonce(extrinsic.Caller)

		err := r.Dispatch(extrinsic.Caller, extrinsic.Call)
		if nil != err {
			r.reporter.Report(block.Header.Number, i, err)
		}
	}
	return nil
}

// SetBalance - genesis setup of an account balance
func (r *Runtime) SetBalance(who AccountId, amount Balance) {
	r.balances.SetBalance(who, amount)
}

// BlockNumber - number of the last executed block
func (r *Runtime) BlockNumber() BlockNumber {
	return r.system.BlockNumber()
}

// Nonce - number of extrinsics submitted by an account
func (r *Runtime) Nonce(who AccountId) Nonce {
	return r.system.Nonce(who)
}

// Balance - current balance of an account
func (r *Runtime) Balance(who AccountId) Balance {
	return r.balances.Balance(who)
}

// Claim - owner of some content
func (r *Runtime) Claim(content Content) (AccountId, bool) {
	return r.claims.Claim(content)
}

// Accounts - all accounts holding a balance entry, in order
func (r *Runtime) Accounts() []AccountId {
	return r.balances.Accounts()
}

// TotalIssuance - sum of all balances, false on overflow
func (r *Runtime) TotalIssuance() (Balance, bool) {
	return r.balances.TotalIssuance()
}

// ClaimCount - number of live claims
func (r *Runtime) ClaimCount() int {
	return r.claims.Count()
}
