// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/fixtures"
	"github.com/bitmark-inc/palletd/merkle"
	"github.com/bitmark-inc/palletd/runtime"
)

func testBlock() runtime.Block {
	return runtime.Block{
		Header: runtime.Header{Number: 2},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.Bob, 69)},
			{Caller: fixtures.Bob, Call: runtime.CreateClaim("hello")},
			{Caller: fixtures.Bob, Call: runtime.RevokeClaim("hello")},
			{Caller: fixtures.Charlie, Call: runtime.Transfer(fixtures.X, 300)},
		},
	}
}

func TestPackedLayout(t *testing.T) {
	block := runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: "A", Call: runtime.Transfer("B", 200)},
		},
	}

	packed, err := blockrecord.Pack(block)
	assert.Nil(t, err, "pack error")

	expected := blockrecord.PackedBlock{
		0x01,       // number
		0x01,       // count
		0x01, 'A',  // caller
		0x01,       // transfer tag
		0x01, 'B',  // to
		0xc8, 0x01, // amount
	}
	assert.Equal(t, expected, packed, "packed bytes")
}

func TestPackUnpack(t *testing.T) {
	block := testBlock()

	packed, err := blockrecord.Pack(block)
	assert.Nil(t, err, "pack error")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, block, unpacked, "round trip")

	again, err := blockrecord.Pack(unpacked)
	assert.Nil(t, err, "repack error")
	assert.Equal(t, packed, again, "repacked bytes")
	assert.Equal(t, packed.Digest(), again.Digest(), "digest")
}

func TestUnpackTruncated(t *testing.T) {
	packed, err := blockrecord.Pack(testBlock())
	assert.Nil(t, err, "pack error")

	for i := 0; i < len(packed); i += 1 {
		_, err := packed[:i].Unpack()
		assert.NotNil(t, err, "truncated at: %d", i)
	}
}

func TestUnpackTrailingData(t *testing.T) {
	packed, err := blockrecord.Pack(testBlock())
	assert.Nil(t, err, "pack error")

	packed = append(packed, 0x00)
	_, err = packed.Unpack()
	assert.Equal(t, fault.ErrInvalidBlockFile, err, "trailing byte")
}

func TestUnpackUnknownTag(t *testing.T) {
	packed := blockrecord.PackedBlock{
		0x01,      // number
		0x01,      // count
		0x01, 'A', // caller
		byte(blockrecord.InvalidTag),
	}
	_, err := packed.Unpack()
	assert.Equal(t, fault.ErrUnknownCall, err, "invalid tag")
}

func TestPackNilCall(t *testing.T) {
	block := runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Alice},
		},
	}
	_, err := blockrecord.Pack(block)
	assert.Equal(t, fault.ErrUnknownCall, err, "nil call")
}

func TestExtrinsicsRoot(t *testing.T) {
	root, err := blockrecord.ExtrinsicsRoot(runtime.Block{})
	assert.Nil(t, err, "empty root error")
	assert.True(t, root.IsZero(), "empty root")

	block := testBlock()
	root, err = blockrecord.ExtrinsicsRoot(block)
	assert.Nil(t, err, "root error")

	ids := make([]merkle.Digest, 0, len(block.Extrinsics))
	for _, e := range block.Extrinsics {
		packed, err := blockrecord.PackExtrinsic(e)
		assert.Nil(t, err, "pack extrinsic error")
		ids = append(ids, merkle.NewDigest(packed))
	}
	assert.Equal(t, merkle.Root(ids), root, "root")

	block.Extrinsics[0], block.Extrinsics[1] = block.Extrinsics[1], block.Extrinsics[0]
	swapped, err := blockrecord.ExtrinsicsRoot(block)
	assert.Nil(t, err, "swapped root error")
	assert.NotEqual(t, root, swapped, "order must change root")
}
