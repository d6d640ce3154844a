// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clvm

// operator atoms used by curried programs
var (
	applyOperator = []byte{0x02}
	quoteOperator = []byte{0x01}
	consOperator  = []byte{0x04}
)

// Curry - bind arguments to a module
//
// the result has the form:
//   (a (q . MOD) (c (q . ARG1) (c (q . ARG2) ... 1)))
func Curry(mod *Node, args ...*Node) *Node {
	environment := NewAtom([]byte{0x01})
	for i := len(args) - 1; i >= 0; i -= 1 {
		environment = List(
			NewAtom(consOperator),
			Cons(NewAtom(quoteOperator), args[i]),
			environment,
		)
	}
	return List(
		NewAtom(applyOperator),
		Cons(NewAtom(quoteOperator), mod),
		environment,
	)
}

// Uncurry - split a curried program into its module and arguments
//
// ok is false if the program does not have the curried form
func Uncurry(n *Node) (mod *Node, args []*Node, ok bool) {
	items, err := n.ToSlice()
	if nil != err || 3 != len(items) {
		return nil, nil, false
	}
	if !items[0].AtomEquals(applyOperator) {
		return nil, nil, false
	}
	mod, ok = unquote(items[1])
	if !ok {
		return nil, nil, false
	}

	args = []*Node{}
	environment := items[2]
	for {
		if environment.AtomEquals([]byte{0x01}) {
			return mod, args, true
		}
		cell, err := environment.ToSlice()
		if nil != err || 3 != len(cell) || !cell[0].AtomEquals(consOperator) {
			return nil, nil, false
		}
		arg, ok := unquote(cell[1])
		if !ok {
			return nil, nil, false
		}
		args = append(args, arg)
		environment = cell[2]
	}
}

// (q . X) => X
func unquote(n *Node) (*Node, bool) {
	if !n.IsPair() || !n.First.AtomEquals(quoteOperator) {
		return nil, false
	}
	return n.Rest, true
}
