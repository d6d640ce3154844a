// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer_test

import (
	"bytes"

	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/bundle"
	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/offer"
)

// stand-in modules so that tests do not need the deployed bytecode
var (
	tokenMod      = clvm.List(clvm.IntAtom(101), clvm.IntAtom(1))
	singletonMod  = clvm.List(clvm.IntAtom(102), clvm.IntAtom(1))
	itemStateMod  = clvm.List(clvm.IntAtom(103), clvm.IntAtom(1))
	settlementMod = clvm.List(clvm.IntAtom(104), clvm.IntAtom(1))
	standardMod   = clvm.List(clvm.IntAtom(106), clvm.IntAtom(1))

	testDictionaries = offer.Dictionaries{
		bytes.Repeat([]byte("first dictionary entry "), 8),
		bytes.Repeat([]byte("second dictionary entry "), 8),
	}
)

func testCodec() *offer.Codec {
	return offer.NewCodec(&asset.Classifier{
		TokenModHash:     clvm.TreeHash(tokenMod),
		SingletonModHash: clvm.TreeHash(singletonMod),
		ItemStateModHash: clvm.TreeHash(itemStateMod),
		ItemPrefix:       asset.ItemPrefix,
	}, testDictionaries)
}

func fill(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func fill32(b byte) [32]byte {
	var a [32]byte
	copy(a[:], fill(b))
	return a
}

func tokenPuzzle(assetID []byte, inner *clvm.Node) *clvm.Node {
	h := clvm.TreeHash(tokenMod)
	return clvm.Curry(tokenMod, clvm.NewAtom(h[:]), clvm.NewAtom(assetID), inner)
}

func nativePuzzle(key byte) *clvm.Node {
	return clvm.Curry(standardMod, clvm.NewAtom(fill(key)))
}

// a coin being offered
func offeredSpend(puzzle *clvm.Node, parent byte, amount uint64) bundle.CoinSpend {
	cs := bundle.CoinSpend{
		Coin: bundle.Coin{
			ParentCoinInfo: fill32(parent),
			PuzzleHash:     clvm.TreeHash(puzzle),
			Amount:         amount,
		},
		PuzzleReveal: clvm.Serialize(puzzle),
		Solution:     clvm.Serialize(clvm.List(clvm.IntAtom(0))),
	}
	return cs
}

// a settlement coin requesting payments
func settlementSpend(puzzle *clvm.Node, payments ...offer.NotarizedPayment) bundle.CoinSpend {
	return bundle.CoinSpend{
		Coin: bundle.Coin{
			PuzzleHash: clvm.TreeHash(puzzle),
		},
		PuzzleReveal: clvm.Serialize(puzzle),
		Solution:     offer.SettlementSolution(payments),
	}
}

func notarized(nonce byte, amounts ...uint64) offer.NotarizedPayment {
	np := offer.NotarizedPayment{
		Nonce: fill32(nonce),
	}
	for i, amount := range amounts {
		np.Payments = append(np.Payments, offer.Payment{
			PuzzleHash: fill32(byte(0x40 + i)),
			Amount:     amount,
		})
	}
	return np
}

func makeBundle(spends ...bundle.CoinSpend) *bundle.SpendBundle {
	sb := &bundle.SpendBundle{
		CoinSpends: spends,
	}
	sb.AggregatedSignature[0] = 0xc0
	return sb
}
