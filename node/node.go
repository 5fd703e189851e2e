// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - owner of the runtime for a running process
//
// every access to the runtime goes through the node lock so that
// extrinsic order is fixed before the runtime sees it
package node

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/runtime"
)

// Genesis - initial balances
type Genesis map[runtime.AccountId]runtime.Balance

// Recorder - persists executed blocks
type Recorder interface {
	runtime.Reporter
	Record(block runtime.Block) (journal.BlockDigests, error)
}

// Failure - one extrinsic that did not dispatch
type Failure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Receipt - outcome of executing a block
type Receipt struct {
	Number     runtime.BlockNumber   `json:"number"`
	Extrinsics int                   `json:"extrinsics"`
	Failures   []Failure             `json:"failures"`
	Digests    *journal.BlockDigests `json:"digests,omitempty"`
}

// Info - summary of node state
type Info struct {
	BlockNumber   runtime.BlockNumber `json:"blockNumber"`
	Accounts      int                 `json:"accounts"`
	Claims        int                 `json:"claims"`
	TotalIssuance runtime.Balance     `json:"totalIssuance"`
	Blocks        uint64              `json:"blocks"`
	Extrinsics    uint64              `json:"extrinsics"`
	Failures      uint64              `json:"failures"`
	Rejected      uint64              `json:"rejected"`
	Uptime        string              `json:"uptime"`
}

// Node - serialised access to one runtime
type Node struct {
	sync.Mutex

	log      *logger.L
	runtime  *runtime.Runtime
	recorder Recorder
	started  time.Time

	// failures of the block currently executing
	current []Failure

	blocks     counter.Counter
	extrinsics counter.Counter
	failures   counter.Counter
	rejected   counter.Counter
}

// New - create a runtime with the genesis balances applied
//
// recorder may be nil, in which case nothing is persisted
func New(genesis Genesis, recorder Recorder) *Node {
	n := &Node{
		log:      logger.New("node"),
		recorder: recorder,
		started:  time.Now(),
	}

	reporters := runtime.Reporters{
		runtime.NewLogReporter(n.log),
		runtime.ReporterFunc(n.collect),
	}
	if nil != recorder {
		reporters = append(reporters, recorder)
	}
	n.runtime = runtime.New(reporters)

	accounts := maps.Keys(genesis)
	slices.Sort(accounts)
	for _, account := range accounts {
		n.runtime.SetBalance(account, genesis[account])
		n.log.Infof("genesis: account: %q  balance: %d", account, genesis[account])
	}

	return n
}

// called with the node lock held, from inside ExecuteBlock
func (n *Node) collect(blockNumber runtime.BlockNumber, index int, err error) {
	n.failures.Increment()
	n.current = append(n.current, Failure{
		Index: index,
		Error: err.Error(),
	})
}

// ExecuteBlock - run a block and record it
//
// a block number mismatch is returned unchanged and nothing is
// recorded; failures to persist are logged since the runtime state has
// already advanced
func (n *Node) ExecuteBlock(block runtime.Block) (Receipt, error) {
	n.Lock()
	defer n.Unlock()

	n.current = make([]Failure, 0)
	err := n.runtime.ExecuteBlock(block)
	if nil != err {
		n.rejected.Increment()
		n.log.Warnf("block rejected: %s", err)
		return Receipt{}, err
	}

	n.blocks.Increment()
	n.extrinsics.Add(uint64(len(block.Extrinsics)))

	receipt := Receipt{
		Number:     block.Header.Number,
		Extrinsics: len(block.Extrinsics),
		Failures:   n.current,
	}
	n.current = nil

	if nil != n.recorder {
		digests, err := n.recorder.Record(block)
		if nil != err {
			n.log.Errorf("record block: %d  error: %s", block.Header.Number, err)
		} else {
			receipt.Digests = &digests
		}
	}

	n.log.Infof("executed block: %d  extrinsics: %d  failures: %d", receipt.Number, receipt.Extrinsics, len(receipt.Failures))
	return receipt, nil
}

// Dispatch - apply a single call outside of any block
//
// nonces are not touched
func (n *Node) Dispatch(caller runtime.AccountId, call runtime.Call) error {
	n.Lock()
	defer n.Unlock()
	return n.runtime.Dispatch(caller, call)
}

// BlockNumber - last executed block
func (n *Node) BlockNumber() runtime.BlockNumber {
	n.Lock()
	defer n.Unlock()
	return n.runtime.BlockNumber()
}

// Balance - balance of an account
func (n *Node) Balance(who runtime.AccountId) runtime.Balance {
	n.Lock()
	defer n.Unlock()
	return n.runtime.Balance(who)
}

// Nonce - extrinsic count of an account
func (n *Node) Nonce(who runtime.AccountId) runtime.Nonce {
	n.Lock()
	defer n.Unlock()
	return n.runtime.Nonce(who)
}

// Claim - owner of content
func (n *Node) Claim(content runtime.Content) (runtime.AccountId, error) {
	n.Lock()
	defer n.Unlock()
	owner, found := n.runtime.Claim(content)
	if !found {
		return "", fault.ErrClaimNotFound
	}
	return owner, nil
}

// Accounts - every account with a balance entry
func (n *Node) Accounts() []runtime.AccountId {
	n.Lock()
	defer n.Unlock()
	return n.runtime.Accounts()
}

// Info - snapshot of the node state and statistics
func (n *Node) Info() (Info, error) {
	n.Lock()
	defer n.Unlock()

	issuance, ok := n.runtime.TotalIssuance()
	if !ok {
		return Info{}, fault.ErrBalanceOverflow
	}

	return Info{
		BlockNumber:   n.runtime.BlockNumber(),
		Accounts:      len(n.runtime.Accounts()),
		Claims:        n.runtime.ClaimCount(),
		TotalIssuance: issuance,
		Blocks:        n.blocks.Uint64(),
		Extrinsics:    n.extrinsics.Uint64(),
		Failures:      n.failures.Uint64(),
		Rejected:      n.rejected.Uint64(),
		Uptime:        time.Since(n.started).Round(time.Second).String(),
	}, nil
}
