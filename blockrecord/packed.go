// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/palletd/balances"
	"github.com/bitmark-inc/palletd/claims"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/merkle"
	"github.com/bitmark-inc/palletd/runtime"
	"github.com/bitmark-inc/palletd/util"
)

// TagType - type code for calls
type TagType uint64

// enumerate the possible call types
// this is encoded a Varint64 after the caller
const (
	// null is not used as a call type
	NullTag = TagType(iota)

	TransferTag    = TagType(iota) // balances: transfer
	CreateClaimTag = TagType(iota) // claims: create claim
	RevokeClaimTag = TagType(iota) // claims: revoke claim

	// this item must be last
	InvalidTag = TagType(iota)
)

// upper limit on extrinsics in one packed block
const MaximumExtrinsics = 10000

// PackedBlock - packed records are just a byte slice
type PackedBlock []byte

// Digest - SHA3-256 of the packed block
func (record PackedBlock) Digest() merkle.Digest {
	return merkle.NewDigest(record)
}

// Pack - convert a block to its binary form
func Pack(block runtime.Block) (PackedBlock, error) {
	if len(block.Extrinsics) > MaximumExtrinsics {
		return nil, fault.ErrInvalidCount
	}

	buffer := util.ToVarint64(block.Header.Number)
	buffer = append(buffer, util.ToVarint64(uint64(len(block.Extrinsics)))...)

	for _, extrinsic := range block.Extrinsics {
		packed, err := PackExtrinsic(extrinsic)
		if nil != err {
			return nil, err
		}
		buffer = append(buffer, packed...)
	}
	return buffer, nil
}

// PackExtrinsic - binary form of a single extrinsic
func PackExtrinsic(extrinsic runtime.Extrinsic) ([]byte, error) {
	buffer := util.AppendBytes(nil, []byte(extrinsic.Caller))

	switch outer := extrinsic.Call.(type) {

	case runtime.BalancesCall:
		switch c := outer.Call.(type) {
		case balances.Transfer[runtime.AccountId, runtime.Balance]:
			buffer = append(buffer, util.ToVarint64(uint64(TransferTag))...)
			buffer = util.AppendBytes(buffer, []byte(c.To))
			buffer = append(buffer, util.ToVarint64(c.Amount)...)
		default:
			return nil, fault.ErrUnknownCall
		}

	case runtime.ClaimsCall:
		switch c := outer.Call.(type) {
		case claims.CreateClaim[runtime.Content]:
			buffer = append(buffer, util.ToVarint64(uint64(CreateClaimTag))...)
			buffer = util.AppendBytes(buffer, []byte(c.Content))
		case claims.RevokeClaim[runtime.Content]:
			buffer = append(buffer, util.ToVarint64(uint64(RevokeClaimTag))...)
			buffer = util.AppendBytes(buffer, []byte(c.Content))
		default:
			return nil, fault.ErrUnknownCall
		}

	default:
		return nil, fault.ErrUnknownCall
	}
	return buffer, nil
}

// Unpack - convert a binary block back to a runtime block
func (record PackedBlock) Unpack() (runtime.Block, error) {
	block := runtime.Block{}

	number, n := util.FromVarint64(record)
	if 0 == n {
		return block, fault.ErrTruncatedRecord
	}
	block.Header.Number = number

	count, countLength := util.FromVarint64(record[n:])
	if 0 == countLength {
		return block, fault.ErrTruncatedRecord
	}
	n += countLength
	if count > MaximumExtrinsics {
		return block, fault.ErrInvalidCount
	}

	block.Extrinsics = make([]runtime.Extrinsic, 0, count)
	for i := uint64(0); i < count; i += 1 {
		extrinsic, used, err := unpackExtrinsic(record[n:])
		if nil != err {
			return block, err
		}
		block.Extrinsics = append(block.Extrinsics, extrinsic)
		n += used
	}

	if n != len(record) {
		return block, fault.ErrInvalidBlockFile
	}
	return block, nil
}

// decode one extrinsic from the front of the buffer
func unpackExtrinsic(record []byte) (runtime.Extrinsic, int, error) {
	extrinsic := runtime.Extrinsic{}

	caller, n := util.ExtractBytes(record)
	if 0 == n {
		return extrinsic, 0, fault.ErrTruncatedRecord
	}
	extrinsic.Caller = string(caller)

	tag, tagLength := util.FromVarint64(record[n:])
	if 0 == tagLength {
		return extrinsic, 0, fault.ErrTruncatedRecord
	}
	n += tagLength

	switch TagType(tag) {

	case TransferTag:
		to, toLength := util.ExtractBytes(record[n:])
		if 0 == toLength {
			return extrinsic, 0, fault.ErrTruncatedRecord
		}
		n += toLength
		amount, amountLength := util.FromVarint64(record[n:])
		if 0 == amountLength {
			return extrinsic, 0, fault.ErrTruncatedRecord
		}
		n += amountLength
		extrinsic.Call = runtime.Transfer(string(to), amount)

	case CreateClaimTag, RevokeClaimTag:
		content, contentLength := util.ExtractBytes(record[n:])
		if 0 == contentLength {
			return extrinsic, 0, fault.ErrTruncatedRecord
		}
		n += contentLength
		if CreateClaimTag == TagType(tag) {
			extrinsic.Call = runtime.CreateClaim(string(content))
		} else {
			extrinsic.Call = runtime.RevokeClaim(string(content))
		}

	default:
		return extrinsic, 0, fault.ErrUnknownCall
	}

	return extrinsic, n, nil
}

// ExtrinsicsRoot - merkle root over the digests of the packed extrinsics
func ExtrinsicsRoot(block runtime.Block) (merkle.Digest, error) {
	ids := make([]merkle.Digest, 0, len(block.Extrinsics))
	for _, extrinsic := range block.Extrinsics {
		packed, err := PackExtrinsic(extrinsic)
		if nil != err {
			return merkle.Digest{}, err
		}
		ids = append(ids, merkle.NewDigest(packed))
	}
	return merkle.Root(ids), nil
}
