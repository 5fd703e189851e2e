// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/palletd/support"
)

// concrete types supplied to every pallet
type (
	AccountId   = string
	BlockNumber = uint64
	Nonce       = uint64
	Balance     = uint64
	Content     = string
)

// block envelope types for this runtime
type (
	Header    = support.Header[BlockNumber]
	Extrinsic = support.Extrinsic[AccountId, Call]
	Block     = support.Block[BlockNumber, AccountId, Call]
)
