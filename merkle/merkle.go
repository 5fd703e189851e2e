// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// FullMerkleTree - compute the tree from a set of item digests
//
// structure is:
//   1. N * item digests
//   2. level 1..m digests
//   3. merkle root digest
//
// an odd digest at any level is paired with itself
func FullMerkleTree(ids []Digest) []Digest {
	idCount := len(ids)

	totalLength := 1 // space for the final root
	for n := idCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	tree := make([]Digest, totalLength)
	copy(tree, ids)
	if idCount <= 1 {
		return tree
	}

	n := idCount
	j := 0
	for workLength := idCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j
			}
			pair := make([]byte, 0, 2*DigestLength)
			pair = append(pair, tree[j][:]...)
			pair = append(pair, tree[k][:]...)
			tree[n] = NewDigest(pair)
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the last entry of the full tree
//
// zero digest for no items, the item itself for a single item
func Root(ids []Digest) Digest {
	tree := FullMerkleTree(ids)
	return tree[len(tree)-1]
}
