// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/bundle"
	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

func makeBundle() *bundle.SpendBundle {
	sb := &bundle.SpendBundle{
		CoinSpends: []bundle.CoinSpend{
			{
				Coin: bundle.Coin{
					Amount: 500,
				},
				PuzzleReveal: clvm.Serialize(clvm.List(clvm.IntAtom(1), clvm.IntAtom(2))),
				Solution:     clvm.Serialize(clvm.Nil()),
			},
			{
				Coin: bundle.Coin{
					Amount: 0,
				},
				PuzzleReveal: clvm.Serialize(clvm.IntAtom(77)),
				Solution:     clvm.Serialize(clvm.List(clvm.NewAtom(make([]byte, 32)))),
			},
		},
	}
	sb.CoinSpends[0].Coin.ParentCoinInfo[0] = 0x11
	sb.CoinSpends[0].Coin.PuzzleHash[31] = 0x22
	for i := range sb.AggregatedSignature {
		sb.AggregatedSignature[i] = byte(i)
	}
	return sb
}

func TestRoundTrip(t *testing.T) {
	packed := makeBundle().Pack()

	sb, err := bundle.Unpack(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, makeBundle(), sb, "bundle differs")
	assert.Equal(t, packed, sb.Pack(), "packed bytes differ")
}

func TestSettlement(t *testing.T) {
	sb := makeBundle()
	assert.False(t, sb.CoinSpends[0].Coin.IsSettlement(), "offered coin is settlement")
	assert.True(t, sb.CoinSpends[1].Coin.IsSettlement(), "settlement not detected")

	// zero amount alone is not a settlement
	c := bundle.Coin{}
	c.ParentCoinInfo[5] = 1
	assert.False(t, c.IsSettlement(), "non-zero parent is settlement")
}

func TestParsePrograms(t *testing.T) {
	sb := makeBundle()

	puzzle, err := sb.CoinSpends[1].Puzzle()
	assert.Nil(t, err, "puzzle error")
	v, err := puzzle.Uint64()
	assert.Nil(t, err, "puzzle value error")
	assert.Equal(t, uint64(77), v, "wrong puzzle value")

	cs := bundle.CoinSpend{
		PuzzleReveal: []byte{0x01, 0x02},
	}
	_, err = cs.Puzzle()
	assert.Equal(t, fault.TrailingBytes, err, "trailing program bytes accepted")
}

func TestUnpackErrors(t *testing.T) {
	packed := makeBundle().Pack()

	_, err := bundle.Unpack(append(packed, 0x00))
	assert.Equal(t, fault.TrailingBytes, err, "trailing byte accepted")

	_, err = bundle.Unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.MalformedBundle, err, "short signature accepted")

	_, err = bundle.Unpack(packed[:2])
	assert.Equal(t, fault.MalformedBundle, err, "short count accepted")

	empty := make([]byte, 4+bundle.SignatureSize)
	_, err = bundle.Unpack(empty)
	assert.Equal(t, fault.EmptyBundle, err, "empty bundle accepted")

	huge := append([]byte{0xff, 0xff, 0xff, 0xff}, packed[4:]...)
	_, err = bundle.Unpack(huge)
	assert.Equal(t, fault.InvalidCount, err, "huge count accepted")

	// puzzle truncated in the middle of the first coin spend
	_, err = bundle.Unpack(packed[:4+72+1])
	assert.NotNil(t, err, "truncated puzzle accepted")
}
