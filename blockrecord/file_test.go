// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/fixtures"
	"github.com/bitmark-inc/palletd/runtime"
)

const blockOne = `{
  "number": 1,
  "extrinsics": [
    {"caller": "Alice", "call": {"pallet": "balances", "function": "transfer", "to": "Bob", "amount": 69}},
    {"caller": "Bob", "call": {"pallet": "claims", "function": "create_claim", "content": "hello"}},
    {"caller": "Bob", "call": {"pallet": "claims", "function": "revoke_claim", "content": "hello"}}
  ]
}`

func TestDecode(t *testing.T) {
	block, err := blockrecord.Decode(strings.NewReader(blockOne))
	assert.Nil(t, err, "decode error")

	expected := runtime.Block{
		Header: runtime.Header{Number: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: fixtures.Alice, Call: runtime.Transfer(fixtures.Bob, 69)},
			{Caller: fixtures.Bob, Call: runtime.CreateClaim("hello")},
			{Caller: fixtures.Bob, Call: runtime.RevokeClaim("hello")},
		},
	}
	assert.Equal(t, expected, block, "decoded block")
}

func TestEncodeDecode(t *testing.T) {
	block := testBlock()

	buffer := bytes.Buffer{}
	err := blockrecord.Encode(&buffer, block)
	assert.Nil(t, err, "encode error")

	decoded, err := blockrecord.Decode(&buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, block, decoded, "round trip")
}

func TestDecodeInvalid(t *testing.T) {
	items := []struct {
		text string
		err  error
	}{
		{
			`{"number": 1, "extrinsics": [{"caller": "A", "call": {"pallet": "assets", "function": "transfer", "to": "B"}}]}`,
			fault.ErrUnknownCall,
		},
		{
			`{"number": 1, "extrinsics": [{"caller": "A", "call": {"pallet": "balances", "function": "burn", "to": "B"}}]}`,
			fault.ErrUnknownCall,
		},
		{
			`{"number": 1, "extrinsics": [{"caller": "A", "call": {"pallet": "balances", "function": "transfer", "amount": 5}}]}`,
			fault.ErrMissingParameters,
		},
		{
			`{"number": 1, "extrinsics": [{"caller": "A", "call": {"pallet": "claims", "function": "create_claim"}}]}`,
			fault.ErrMissingParameters,
		},
		{
			`{"number": 1, "extrinsics": [{"call": {"pallet": "claims", "function": "create_claim", "content": "x"}}]}`,
			fault.ErrMissingParameters,
		},
	}

	for i, item := range items {
		_, err := blockrecord.Decode(strings.NewReader(item.text))
		assert.Equal(t, item.err, err, "%d: error", i)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := blockrecord.Decode(strings.NewReader(`{"number": 1, "height": 2}`))
	assert.NotNil(t, err, "unknown field accepted")
}

func TestReadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "block-1.json")
	err := os.WriteFile(filename, []byte(blockOne), 0o600)
	assert.Nil(t, err, "write error")

	block, err := blockrecord.ReadFile(filename)
	assert.Nil(t, err, "read error")
	assert.Equal(t, uint64(1), block.Header.Number, "number")
	assert.Equal(t, 3, len(block.Extrinsics), "extrinsic count")

	_, err = blockrecord.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err, "missing file")
}
