// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/json"
	"io"
	"os"

	"github.com/bitmark-inc/palletd/balances"
	"github.com/bitmark-inc/palletd/claims"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/runtime"
)

// pallet and function names as written in block files
const (
	BalancesPallet = "balances"
	ClaimsPallet   = "claims"

	TransferFunction    = "transfer"
	CreateClaimFunction = "create_claim"
	RevokeClaimFunction = "revoke_claim"
)

// CallJSON - flattened form of a runtime call
type CallJSON struct {
	Pallet   string `json:"pallet"`
	Function string `json:"function"`
	To       string `json:"to,omitempty"`
	Amount   uint64 `json:"amount,omitempty"`
	Content  string `json:"content,omitempty"`
}

// ExtrinsicJSON - one extrinsic of a block file
type ExtrinsicJSON struct {
	Caller string   `json:"caller"`
	Call   CallJSON `json:"call"`
}

// BlockJSON - the structure of a block file
type BlockJSON struct {
	Number     uint64          `json:"number"`
	Extrinsics []ExtrinsicJSON `json:"extrinsics"`
}

// ToCall - convert the flattened form to a runtime call
func (c CallJSON) ToCall() (runtime.Call, error) {
	switch c.Pallet {

	case BalancesPallet:
		switch c.Function {
		case TransferFunction:
			if "" == c.To {
				return nil, fault.ErrMissingParameters
			}
			return runtime.Transfer(c.To, c.Amount), nil
		}

	case ClaimsPallet:
		if "" == c.Content {
			return nil, fault.ErrMissingParameters
		}
		switch c.Function {
		case CreateClaimFunction:
			return runtime.CreateClaim(c.Content), nil
		case RevokeClaimFunction:
			return runtime.RevokeClaim(c.Content), nil
		}
	}
	return nil, fault.ErrUnknownCall
}

// CallToJSON - flatten a runtime call
func CallToJSON(call runtime.Call) (CallJSON, error) {
	switch outer := call.(type) {

	case runtime.BalancesCall:
		switch c := outer.Call.(type) {
		case balances.Transfer[runtime.AccountId, runtime.Balance]:
			return CallJSON{
				Pallet:   BalancesPallet,
				Function: TransferFunction,
				To:       c.To,
				Amount:   c.Amount,
			}, nil
		}

	case runtime.ClaimsCall:
		switch c := outer.Call.(type) {
		case claims.CreateClaim[runtime.Content]:
			return CallJSON{
				Pallet:   ClaimsPallet,
				Function: CreateClaimFunction,
				Content:  c.Content,
			}, nil
		case claims.RevokeClaim[runtime.Content]:
			return CallJSON{
				Pallet:   ClaimsPallet,
				Function: RevokeClaimFunction,
				Content:  c.Content,
			}, nil
		}
	}
	return CallJSON{}, fault.ErrUnknownCall
}

// ToBlock - convert a decoded block file to a runtime block
func (b BlockJSON) ToBlock() (runtime.Block, error) {
	block := runtime.Block{
		Header:     runtime.Header{Number: b.Number},
		Extrinsics: make([]runtime.Extrinsic, 0, len(b.Extrinsics)),
	}
	if len(b.Extrinsics) > MaximumExtrinsics {
		return block, fault.ErrInvalidCount
	}
	for _, e := range b.Extrinsics {
		if "" == e.Caller {
			return block, fault.ErrMissingParameters
		}
		call, err := e.Call.ToCall()
		if nil != err {
			return block, err
		}
		block.Extrinsics = append(block.Extrinsics, runtime.Extrinsic{
			Caller: e.Caller,
			Call:   call,
		})
	}
	return block, nil
}

// BlockToJSON - flatten a runtime block
func BlockToJSON(block runtime.Block) (BlockJSON, error) {
	b := BlockJSON{
		Number:     block.Header.Number,
		Extrinsics: make([]ExtrinsicJSON, 0, len(block.Extrinsics)),
	}
	for _, e := range block.Extrinsics {
		call, err := CallToJSON(e.Call)
		if nil != err {
			return b, err
		}
		b.Extrinsics = append(b.Extrinsics, ExtrinsicJSON{
			Caller: e.Caller,
			Call:   call,
		})
	}
	return b, nil
}

// Decode - read one block in JSON form
func Decode(r io.Reader) (runtime.Block, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	b := BlockJSON{}
	if err := decoder.Decode(&b); nil != err {
		return runtime.Block{}, err
	}
	return b.ToBlock()
}

// Encode - write one block in JSON form
func Encode(w io.Writer, block runtime.Block) error {
	b, err := BlockToJSON(block)
	if nil != err {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(b)
}

// ReadFile - decode a block file
func ReadFile(filename string) (runtime.Block, error) {
	f, err := os.Open(filename)
	if nil != err {
		return runtime.Block{}, err
	}
	defer f.Close()

	return Decode(f)
}
