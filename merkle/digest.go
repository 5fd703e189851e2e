// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - SHA3-256 digests of packed records and the merkle
// root over a list of them
package merkle

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/palletd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - SHA3-256 of some packed data
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// IsZero - true for the all-zero digest of an empty tree
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// String - hex text for the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - tagged hex text for the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DigestLength))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.ErrTruncatedRecord
	}
	_, err := hex.Decode(digest[:], s)
	return err
}

// DigestFromBytes - validate and copy a binary digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrTruncatedRecord
	}
	copy(digest[:], buffer)
	return nil
}
