// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ProcessError("already initialised")
	ErrBalanceOverflow       = InvalidError("balance overflow")
	ErrBlockNotFound         = NotFoundError("block not found")
	ErrBlockNumberMismatch   = RecordError("block number mismatch")
	ErrClaimNotFound         = NotFoundError("claim not found")
	ErrContentAlreadyClaimed = ExistsError("content already claimed")
	ErrInsufficientFunds     = InvalidError("insufficient funds")
	ErrInvalidBlockFile      = RecordError("invalid block file")
	ErrInvalidCall           = InvalidError("invalid call")
	ErrInvalidConfiguration  = InvalidError("invalid configuration")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidIpAddress      = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel  = ProcessError("invalid logger channel")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrMissingParameters     = InvalidError("missing parameters")
	ErrNotADirectory         = InvalidError("not a directory")
	ErrNotClaimOwner         = InvalidError("not claim owner")
	ErrNotInitialised        = ProcessError("not initialised")
	ErrRateLimiting          = ProcessError("rate limiting")
	ErrTruncatedRecord       = RecordError("truncated record")
	ErrUnknownCall           = RecordError("unknown call")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }

// IsValidation - true for the per-extrinsic errors that a block
// reports but does not abort on
func IsValidation(e error) bool {
	return IsErrExists(e) || IsErrInvalid(e) || IsErrNotFound(e)
}
