// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// seven bits per byte, least significant group first, top bit set
// when another byte follows; the ninth byte carries a full eight bits
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	for i := 0; i < Varint64MaximumBytes-1; i += 1 {
		if value < 0x80 {
			return append(result, byte(value))
		}
		result = append(result, byte(value)|0x80)
		value >>= 7
	}
	return append(result, byte(value))
}

// FromVarint64 - convert the front of a buffer to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)

	for count := 1; count <= len(buffer) && count <= Varint64MaximumBytes; count += 1 {
		b := uint64(buffer[count-1])
		if Varint64MaximumBytes == count {
			return result | b<<shift, count
		}
		result |= (b & 0x7f) << shift
		if 0 == b&0x80 {
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// AppendBytes - append a Varint64 length followed by the data
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

// ExtractBytes - split a length prefixed item from the front of a buffer
//
// returns the item and the number of bytes consumed, or nil, 0 if the
// buffer is truncated
func ExtractBytes(buffer []byte) ([]byte, int) {
	length, n := FromVarint64(buffer)
	if 0 == n {
		return nil, 0
	}
	if uint64(len(buffer)-n) < length {
		return nil, 0
	}
	end := n + int(length)
	return buffer[n:end], end
}
