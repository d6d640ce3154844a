// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clvm

import (
	sha256 "github.com/minio/sha256-simd"
)

// prefixes separating atom hashes from pair hashes
const (
	atomPrefix = 0x01
	pairPrefix = 0x02
)

// TreeHash - the standard hash of a program
//
// computed without recursion so that the depth of the tree does not
// matter
func TreeHash(n *Node) [32]byte {
	type frame struct {
		node    *Node
		visited bool
	}

	hashes := [][32]byte{}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.IsAtom() {
			hashes = append(hashes, hashAtom(f.node.Atom))
			continue
		}
		if !f.visited {
			stack = append(stack, frame{node: f.node, visited: true})
			stack = append(stack, frame{node: f.node.Rest})
			stack = append(stack, frame{node: f.node.First})
			continue
		}

		rest := hashes[len(hashes)-1]
		first := hashes[len(hashes)-2]
		hashes = hashes[:len(hashes)-2]
		hashes = append(hashes, hashPair(first, rest))
	}
	return hashes[0]
}

func hashAtom(atom []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{atomPrefix})
	h.Write(atom)
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

func hashPair(first [32]byte, rest [32]byte) [32]byte {
	buffer := make([]byte, 0, 65)
	buffer = append(buffer, pairPrefix)
	buffer = append(buffer, first[:]...)
	buffer = append(buffer, rest[:]...)
	return sha256.Sum256(buffer)
}
