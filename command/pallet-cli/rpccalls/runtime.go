// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/rpc/state"
	"github.com/bitmark-inc/palletd/runtime"
)

func method(name string) string {
	return state.ServiceName + "." + name
}

// GetInfo - request status from palletd
func (client *Client) GetInfo() (*state.InfoReply, error) {
	var reply state.InfoReply
	if err := client.client.Call(method("Info"), state.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	client.printJson("Info Reply", reply)

	return &reply, nil
}

// GetBalance - balance of one account
func (client *Client) GetBalance(account runtime.AccountId) (*state.BalanceReply, error) {
	args := state.AccountArguments{
		Account: account,
	}

	client.printJson("Balance Request", args)

	reply := &state.BalanceReply{}
	if err := client.client.Call(method("Balance"), args, reply); nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}

// GetNonce - nonce of one account
func (client *Client) GetNonce(account runtime.AccountId) (*state.NonceReply, error) {
	args := state.AccountArguments{
		Account: account,
	}

	client.printJson("Nonce Request", args)

	reply := &state.NonceReply{}
	if err := client.client.Call(method("Nonce"), args, reply); nil != err {
		return nil, err
	}

	client.printJson("Nonce Reply", reply)

	return reply, nil
}

// GetClaim - owner of some content
func (client *Client) GetClaim(content runtime.Content) (*state.ClaimReply, error) {
	args := state.ClaimArguments{
		Content: content,
	}

	client.printJson("Claim Request", args)

	reply := &state.ClaimReply{}
	if err := client.client.Call(method("Claim"), args, reply); nil != err {
		return nil, err
	}

	client.printJson("Claim Reply", reply)

	return reply, nil
}

// Submit - execute a block on the node
func (client *Client) Submit(block runtime.Block) (*state.SubmitReply, error) {
	args, err := blockrecord.BlockToJSON(block)
	if nil != err {
		return nil, err
	}

	client.printJson("Submit Request", args)

	reply := &state.SubmitReply{}
	if err := client.client.Call(method("Submit"), args, reply); nil != err {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return reply, nil
}

// GetBlock - a block from the node's journal
func (client *Client) GetBlock(number runtime.BlockNumber) (*state.BlockReply, error) {
	args := state.BlockArguments{
		Number: number,
	}

	client.printJson("Block Request", args)

	reply := &state.BlockReply{}
	if err := client.client.Call(method("Block"), args, reply); nil != err {
		return nil, err
	}

	client.printJson("Block Reply", reply)

	return reply, nil
}
