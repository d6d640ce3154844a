// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clvm

import (
	"github.com/splash-network/splashd/fault"
)

// integers are big endian two's complement with the minimum number of
// bytes, so values with the top bit set gain a leading zero byte

// IntAtom - atom for a non-negative integer
func IntAtom(value uint64) *Node {
	b := make([]byte, 0, 9)
	for shift := 56; shift >= 0; shift -= 8 {
		c := byte(value >> uint(shift))
		if 0 == len(b) && 0 == c {
			continue
		}
		b = append(b, c)
	}
	if len(b) > 0 && 0 != b[0]&0x80 {
		b = append([]byte{0}, b...)
	}
	return NewAtom(b)
}

// Uint64 - read a non-negative integer atom that fits in 64 bits
func (n *Node) Uint64() (uint64, error) {
	if !n.IsAtom() {
		return 0, fault.MalformedProgram
	}
	b := n.Atom
	if 0 == len(b) {
		return 0, nil
	}
	if 0 != b[0]&0x80 {
		return 0, fault.AmountOverflow
	}
	for len(b) > 0 && 0 == b[0] {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, fault.AmountOverflow
	}
	value := uint64(0)
	for _, c := range b {
		value = value<<8 | uint64(c)
	}
	return value, nil
}
