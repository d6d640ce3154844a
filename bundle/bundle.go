// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle

import (
	"encoding/binary"

	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

// fixed field sizes
const (
	HashSize      = 32
	SignatureSize = 96

	coinSize  = 2*HashSize + 8
	countSize = 4

	// smallest possible coin spend: a coin and two single byte programs
	minimumCoinSpendSize = coinSize + 2
)

// Coin - reference to the coin being spent
type Coin struct {
	ParentCoinInfo [HashSize]byte
	PuzzleHash     [HashSize]byte
	Amount         uint64
}

// CoinSpend - a coin with the program guarding it and the solution
// to that program
type CoinSpend struct {
	Coin         Coin
	PuzzleReveal []byte
	Solution     []byte
}

// SpendBundle - ordered coin spends and aggregated signature
type SpendBundle struct {
	CoinSpends          []CoinSpend
	AggregatedSignature [SignatureSize]byte
}

// IsSettlement - true for a coin with zero parent and zero amount,
// which marks a requested payment rather than an offered coin
func (c Coin) IsSettlement() bool {
	if 0 != c.Amount {
		return false
	}
	for _, b := range c.ParentCoinInfo {
		if 0 != b {
			return false
		}
	}
	return true
}

// Puzzle - parse the puzzle program
func (cs CoinSpend) Puzzle() (*clvm.Node, error) {
	return parseExact(cs.PuzzleReveal)
}

// ParsedSolution - parse the solution program
func (cs CoinSpend) ParsedSolution() (*clvm.Node, error) {
	return parseExact(cs.Solution)
}

func parseExact(program []byte) (*clvm.Node, error) {
	n, length, err := clvm.Parse(program)
	if nil != err {
		return nil, err
	}
	if length != len(program) {
		return nil, fault.TrailingBytes
	}
	return n, nil
}

// Unpack - deserialise a complete bundle, every byte must be consumed
func Unpack(buffer []byte) (*SpendBundle, error) {
	if len(buffer) < countSize {
		return nil, fault.MalformedBundle
	}
	count := binary.BigEndian.Uint32(buffer[:countSize])
	buffer = buffer[countSize:]

	if 0 == count {
		return nil, fault.EmptyBundle
	}
	// reject counts that could not possibly fit before allocating
	if uint64(count)*minimumCoinSpendSize > uint64(len(buffer)) {
		return nil, fault.InvalidCount
	}

	spends := make([]CoinSpend, 0, count)
	for i := uint32(0); i < count; i += 1 {
		if len(buffer) < coinSize {
			return nil, fault.MalformedBundle
		}
		cs := CoinSpend{}
		copy(cs.Coin.ParentCoinInfo[:], buffer[:HashSize])
		copy(cs.Coin.PuzzleHash[:], buffer[HashSize:2*HashSize])
		cs.Coin.Amount = binary.BigEndian.Uint64(buffer[2*HashSize : coinSize])
		buffer = buffer[coinSize:]

		n, err := clvm.SerializedLength(buffer)
		if nil != err {
			return nil, err
		}
		cs.PuzzleReveal = buffer[:n:n]
		buffer = buffer[n:]

		n, err = clvm.SerializedLength(buffer)
		if nil != err {
			return nil, err
		}
		cs.Solution = buffer[:n:n]
		buffer = buffer[n:]

		spends = append(spends, cs)
	}

	if len(buffer) < SignatureSize {
		return nil, fault.MalformedBundle
	}
	if len(buffer) > SignatureSize {
		return nil, fault.TrailingBytes
	}

	sb := &SpendBundle{
		CoinSpends: spends,
	}
	copy(sb.AggregatedSignature[:], buffer)
	return sb, nil
}

// Pack - serialise a bundle
func (sb *SpendBundle) Pack() []byte {
	size := countSize + SignatureSize
	for _, cs := range sb.CoinSpends {
		size += coinSize + len(cs.PuzzleReveal) + len(cs.Solution)
	}

	buffer := make([]byte, countSize, size)
	binary.BigEndian.PutUint32(buffer, uint32(len(sb.CoinSpends)))
	for _, cs := range sb.CoinSpends {
		buffer = append(buffer, cs.Coin.ParentCoinInfo[:]...)
		buffer = append(buffer, cs.Coin.PuzzleHash[:]...)
		buffer = binary.BigEndian.AppendUint64(buffer, cs.Coin.Amount)
		buffer = append(buffer, cs.PuzzleReveal...)
		buffer = append(buffer, cs.Solution...)
	}
	return append(buffer, sb.AggregatedSignature[:]...)
}
