// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/palletd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingAccount     = fault.InvalidError("account is required")
	ErrMissingBlockFile   = fault.InvalidError("block file is required")
	ErrMissingBlockNumber = fault.InvalidError("block number is required")
	ErrMissingConnect     = fault.InvalidError("connect address is required")
	ErrMissingContent     = fault.InvalidError("content is required")
)
