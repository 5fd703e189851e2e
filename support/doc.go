// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package support - the shared type contract for all pallets
//
// Every pallet is generic over the constraints declared here so that
// pallets interoperate without knowing the concrete identifier or
// numeric types chosen by the runtime that assembles them.
//
// Also holds the generic block envelope:
//
//   Block     = Header ++ [Extrinsic...]
//   Header    = block number
//   Extrinsic = caller ++ call
package support
