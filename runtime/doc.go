// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package runtime - assembles the pallets into one state machine
//
// the runtime fixes the concrete types for every pallet, exposes a
// single Call union and a Dispatch entry point, and executes blocks:
//
//   ExecuteBlock(block)
//     block.Header.Number must be BlockNumber()+1 or nothing changes
//     for each extrinsic in order:
//       nonce[caller] += 1           (even if the call fails)
//       Dispatch(caller, call)       (failures go to the Reporter)
//
// the runtime is not safe for concurrent use; callers must serialise
// access (see the node package)
package runtime
