// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package support

// Header - the block header, only the number is validated
type Header[BN BlockNumber] struct {
	Number BN `json:"number"`
}

// Extrinsic - an externally submitted instruction
//
// the caller is supplied by the submitter and is not part of the call
type Extrinsic[A AccountId, C any] struct {
	Caller A `json:"caller"`
	Call   C `json:"call"`
}

// Block - a header and the extrinsics to apply in order
type Block[BN BlockNumber, A AccountId, C any] struct {
	Header     Header[BN]        `json:"header"`
	Extrinsics []Extrinsic[A, C] `json:"extrinsics"`
}

// Dispatcher - routes a call on behalf of a caller to the operation
// that implements it
type Dispatcher[A AccountId, C any] interface {
	Dispatch(caller A, call C) error
}
