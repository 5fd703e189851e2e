// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - the Runtime RPC service
package state

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/rpc/ratelimit"
	"github.com/bitmark-inc/palletd/runtime"
)

// ServiceName - name the service is registered under
const ServiceName = "Runtime"

const (
	rateLimitState = 200
	rateBurstState = 100

	// extrinsics are charged one token each
	rateLimitSubmit = 1000
	rateBurstSubmit = blockrecord.MaximumExtrinsics
)

// Node - the part of the node used by this service
type Node interface {
	ExecuteBlock(runtime.Block) (node.Receipt, error)
	Balance(runtime.AccountId) runtime.Balance
	Nonce(runtime.AccountId) runtime.Nonce
	Claim(runtime.Content) (runtime.AccountId, error)
	Info() (node.Info, error)
}

// State - type for RPC calls
type State struct {
	Log           *logger.L
	Limiter       *rate.Limiter
	SubmitLimiter *rate.Limiter
	Start         time.Time
	Version       string
	node          Node
	journal       bool
	counter       *counter.Counter
}

// New - create the service
//
// withJournal enables block queries against storage
func New(log *logger.L, n Node, withJournal bool, start time.Time, version string, counter *counter.Counter) *State {
	return &State{
		Log:           log,
		Limiter:       rate.NewLimiter(rateLimitState, rateBurstState),
		SubmitLimiter: rate.NewLimiter(rateLimitSubmit, rateBurstSubmit),
		Start:         start,
		Version:       version,
		node:          n,
		journal:       withJournal,
		counter:       counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	node.Info
	RPCs    uint64 `json:"rpcs"`
	Version string `json:"version"`
	Journal bool   `json:"journal"`
}

// Info - return some information about this node
func (s *State) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	info, err := s.node.Info()
	if nil != err {
		return err
	}

	reply.Info = info
	reply.RPCs = s.counter.Uint64()
	reply.Version = s.Version
	reply.Journal = s.journal
	return nil
}

// ---

// AccountArguments - an account to query
type AccountArguments struct {
	Account runtime.AccountId `json:"account"`
}

// BalanceReply - balance of an account
type BalanceReply struct {
	Account runtime.AccountId `json:"account"`
	Balance runtime.Balance   `json:"balance"`
}

// Balance - current balance of an account
func (s *State) Balance(arguments *AccountArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Account {
		return fault.ErrMissingParameters
	}

	reply.Account = arguments.Account
	reply.Balance = s.node.Balance(arguments.Account)
	return nil
}

// NonceReply - nonce of an account
type NonceReply struct {
	Account runtime.AccountId `json:"account"`
	Nonce   runtime.Nonce     `json:"nonce"`
}

// Nonce - number of extrinsics an account has submitted
func (s *State) Nonce(arguments *AccountArguments, reply *NonceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Account {
		return fault.ErrMissingParameters
	}

	reply.Account = arguments.Account
	reply.Nonce = s.node.Nonce(arguments.Account)
	return nil
}

// ---

// ClaimArguments - content to query
type ClaimArguments struct {
	Content runtime.Content `json:"content"`
}

// ClaimReply - owner of content
type ClaimReply struct {
	Content runtime.Content   `json:"content"`
	Owner   runtime.AccountId `json:"owner"`
}

// Claim - owner of some content
func (s *State) Claim(arguments *ClaimArguments, reply *ClaimReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Content {
		return fault.ErrMissingParameters
	}

	owner, err := s.node.Claim(arguments.Content)
	if nil != err {
		return err
	}

	reply.Content = arguments.Content
	reply.Owner = owner
	return nil
}

// ---

// SubmitArguments - a block in block file form
type SubmitArguments = blockrecord.BlockJSON

// SubmitReply - outcome of the block
type SubmitReply = node.Receipt

// Submit - execute a block
//
// only malformed and out of sequence blocks are errors, individual
// extrinsic failures are listed in the reply
func (s *State) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(s.SubmitLimiter, len(arguments.Extrinsics), blockrecord.MaximumExtrinsics); nil != err {
		return err
	}

	block, err := arguments.ToBlock()
	if nil != err {
		return err
	}

	receipt, err := s.node.ExecuteBlock(block)
	if nil != err {
		return err
	}

	s.Log.Infof("submitted block: %d  extrinsics: %d  failures: %d", receipt.Number, receipt.Extrinsics, len(receipt.Failures))
	*reply = receipt
	return nil
}

// ---

// BlockArguments - number of a recorded block
type BlockArguments struct {
	Number runtime.BlockNumber `json:"number"`
}

// BlockReply - a recorded block with its failures
type BlockReply struct {
	Block   blockrecord.BlockJSON `json:"block"`
	Digests journal.BlockDigests  `json:"digests"`
	Reports []journal.Report      `json:"reports"`
}

// Block - read a block back from the journal
func (s *State) Block(arguments *BlockArguments, reply *BlockReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if !s.journal {
		return fault.ErrNotInitialised
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	block, err := journal.Block(arguments.Number)
	if nil != err {
		return err
	}
	b, err := blockrecord.BlockToJSON(block)
	if nil != err {
		return err
	}
	digests, err := journal.Digests(arguments.Number)
	if nil != err {
		return err
	}
	reports, err := journal.Reports(arguments.Number)
	if nil != err {
		return err
	}

	reply.Block = b
	reply.Digests = digests
	reply.Reports = reports
	return nil
}
