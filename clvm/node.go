// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clvm

import (
	"bytes"

	"github.com/splash-network/splashd/fault"
)

// Node - an atom (First == nil) or a pair
type Node struct {
	Atom  []byte
	First *Node
	Rest  *Node
}

// NewAtom - create an atom node
func NewAtom(atom []byte) *Node {
	return &Node{Atom: atom}
}

// Nil - the empty atom which also terminates lists
func Nil() *Node {
	return &Node{}
}

// Cons - create a pair
func Cons(first *Node, rest *Node) *Node {
	return &Node{First: first, Rest: rest}
}

// List - create a nil terminated list
func List(items ...*Node) *Node {
	l := Nil()
	for i := len(items) - 1; i >= 0; i -= 1 {
		l = Cons(items[i], l)
	}
	return l
}

// IsPair - true for a pair
func (n *Node) IsPair() bool {
	return nil != n.First
}

// IsAtom - true for an atom
func (n *Node) IsAtom() bool {
	return nil == n.First
}

// IsNil - true for the empty atom
func (n *Node) IsNil() bool {
	return nil == n.First && 0 == len(n.Atom)
}

// AtomEquals - true if the node is an atom with exactly these bytes
func (n *Node) AtomEquals(b []byte) bool {
	return n.IsAtom() && bytes.Equal(n.Atom, b)
}

// ToSlice - elements of a nil terminated list
func (n *Node) ToSlice() ([]*Node, error) {
	items := []*Node{}
	for cur := n; ; cur = cur.Rest {
		if cur.IsAtom() {
			if !cur.IsNil() {
				return nil, fault.MalformedProgram
			}
			return items, nil
		}
		items = append(items, cur.First)
	}
}

// Bytes32 - a 32 byte atom
func (n *Node) Bytes32() ([32]byte, bool) {
	var b [32]byte
	if !n.IsAtom() || 32 != len(n.Atom) {
		return b, false
	}
	copy(b[:], n.Atom)
	return b, true
}
