// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clvm

import (
	"github.com/splash-network/splashd/fault"
)

// serialisation markers
const (
	consBox       = 0xff
	backReference = 0xfe
	maxSingleByte = 0x7f
	nilAtom       = 0x80

	maximumAtomSize = 0x400000000
)

// parsing operations kept on an explicit stack so that deeply nested
// input cannot exhaust the goroutine stack
type operation int

const (
	opParse operation = iota
	opCons
)

// Parse - read one serialised program from the front of the buffer,
// returns the program and the number of bytes used
func Parse(buffer []byte) (*Node, int, error) {
	values := []*Node{}
	ops := []operation{opParse}
	pos := 0

	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch op {
		case opCons:
			if len(values) < 2 {
				return nil, 0, fault.MalformedProgram
			}
			rest := values[len(values)-1]
			first := values[len(values)-2]
			values = values[:len(values)-2]
			values = append(values, Cons(first, rest))

		case opParse:
			if pos >= len(buffer) {
				return nil, 0, fault.MalformedProgram
			}
			b := buffer[pos]
			switch {
			case consBox == b:
				pos += 1
				ops = append(ops, opCons, opParse, opParse)
			case backReference == b:
				return nil, 0, fault.UnsupportedBackReference
			default:
				start, end, err := atomBounds(buffer, pos)
				if nil != err {
					return nil, 0, err
				}
				values = append(values, NewAtom(buffer[start:end:end]))
				pos = end
			}
		}
	}

	if 1 != len(values) {
		return nil, 0, fault.MalformedProgram
	}
	return values[0], pos, nil
}

// SerializedLength - the number of bytes occupied by the serialised
// program at the front of the buffer, without building the tree
func SerializedLength(buffer []byte) (int, error) {
	pending := 1
	pos := 0
	for pending > 0 {
		pending -= 1
		if pos >= len(buffer) {
			return 0, fault.MalformedProgram
		}
		switch buffer[pos] {
		case consBox:
			pos += 1
			pending += 2
		case backReference:
			return 0, fault.UnsupportedBackReference
		default:
			_, end, err := atomBounds(buffer, pos)
			if nil != err {
				return 0, err
			}
			pos = end
		}
	}
	return pos, nil
}

// the start and end of the atom data whose prefix begins at pos
func atomBounds(buffer []byte, pos int) (int, int, error) {
	b := buffer[pos]
	if b <= maxSingleByte {
		return pos, pos + 1, nil
	}

	bitCount := 0
	mask := byte(0x80)
	for 0 != b&mask {
		bitCount += 1
		b &^= mask
		mask >>= 1
	}

	pos += 1
	size := uint64(b)
	if bitCount > 1 {
		extra := bitCount - 1
		if pos+extra > len(buffer) {
			return 0, 0, fault.MalformedProgram
		}
		for _, c := range buffer[pos : pos+extra] {
			size = size<<8 | uint64(c)
		}
		pos += extra
	}
	if size >= maximumAtomSize {
		return 0, 0, fault.ProgramTooLarge
	}
	if uint64(len(buffer)-pos) < size {
		return 0, 0, fault.MalformedProgram
	}
	return pos, pos + int(size), nil
}

// Serialize - the binary form of a program
func Serialize(n *Node) []byte {
	out := []byte{}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsPair() {
			out = append(out, consBox)
			stack = append(stack, cur.Rest, cur.First)
			continue
		}
		out = appendAtom(out, cur.Atom)
	}
	return out
}

func appendAtom(out []byte, atom []byte) []byte {
	size := len(atom)
	switch {
	case 0 == size:
		return append(out, nilAtom)
	case 1 == size && atom[0] <= maxSingleByte:
		return append(out, atom[0])
	case size < 0x40:
		out = append(out, 0x80|byte(size))
	case size < 0x2000:
		out = append(out, 0xc0|byte(size>>8), byte(size))
	case size < 0x100000:
		out = append(out, 0xe0|byte(size>>16), byte(size>>8), byte(size))
	case size < 0x8000000:
		out = append(out, 0xf0|byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	default:
		s := uint64(size)
		out = append(out, 0xf8|byte(s>>32), byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
	}
	return append(out, atom...)
}
