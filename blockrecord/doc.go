// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - encodings of a runtime block
//
// Packed binary form (all integers Varint64, strings length prefixed):
//
//   block     = number ++ count ++ extrinsic...
//   extrinsic = caller ++ tag ++ fields
//
//   tag 1 transfer      to ++ amount
//   tag 2 create claim  content
//   tag 3 revoke claim  content
//
// JSON form, used for block files and RPC submission:
//
//   {"number": 1, "extrinsics": [
//     {"caller": "Alice", "call": {"pallet": "balances", "function": "transfer", "to": "Bob", "amount": 69}},
//     {"caller": "Bob", "call": {"pallet": "claims", "function": "create_claim", "content": "…"}}
//   ]}
package blockrecord
