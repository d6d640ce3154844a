// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"github.com/splash-network/splashd/bundle"
	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

// Payment - a requested destination and amount
type Payment struct {
	PuzzleHash [bundle.HashSize]byte
	Amount     uint64
	Memos      [][]byte
}

// NotarizedPayment - payments bound to a nonce
type NotarizedPayment struct {
	Nonce    [bundle.HashSize]byte
	Payments []Payment
}

// Requested - all notarized payments for one asset
type Requested struct {
	AssetID  string
	Payments []NotarizedPayment
}

// ParsedOffer - coin spends split into offered coins and requested
// payments
type ParsedOffer struct {
	AggregatedSignature [bundle.SignatureSize]byte
	Offered             []bundle.CoinSpend

	// in order of first appearance
	Requested []*Requested
}

// requested entry for an asset, created on first use
func (p *ParsedOffer) requested(assetID string) *Requested {
	for _, r := range p.Requested {
		if assetID == r.AssetID {
			return r
		}
	}
	r := &Requested{
		AssetID:  assetID,
		Payments: []NotarizedPayment{},
	}
	p.Requested = append(p.Requested, r)
	return r
}

// Parse - decode and classify an offer string
func (c *Codec) Parse(raw string) (*ParsedOffer, error) {
	sb, err := c.Decode(raw)
	if nil != err {
		return nil, err
	}
	return c.Classify(sb)
}

// Classify - split a bundle into offered coins and requested payments
//
// settlement coins carry the requested payments in their solution and
// are keyed by the asset their puzzle classifies as, payments for the
// same asset accumulate
func (c *Codec) Classify(sb *bundle.SpendBundle) (*ParsedOffer, error) {
	parsed := &ParsedOffer{
		AggregatedSignature: sb.AggregatedSignature,
		Offered:             []bundle.CoinSpend{},
		Requested:           []*Requested{},
	}

	for _, cs := range sb.CoinSpends {
		if !cs.Coin.IsSettlement() {
			parsed.Offered = append(parsed.Offered, cs)
			continue
		}

		solution, err := cs.ParsedSolution()
		if nil != err {
			return nil, err
		}
		payments, err := NotarizedPayments(solution)
		if nil != err {
			return nil, err
		}
		puzzle, err := cs.Puzzle()
		if nil != err {
			return nil, err
		}

		r := parsed.requested(c.Classifier.ID(puzzle))
		r.Payments = append(r.Payments, payments...)
	}
	return parsed, nil
}

// NotarizedPayments - read a settlement solution
//
//   ((nonce . ((puzzle_hash amount . memos) ...)) ...)
//
// where memos is nil or a single list of atoms
func NotarizedPayments(solution *clvm.Node) ([]NotarizedPayment, error) {
	items, err := solution.ToSlice()
	if nil != err {
		return nil, fault.InvalidSettlement
	}

	result := make([]NotarizedPayment, 0, len(items))
	for _, item := range items {
		if !item.IsPair() {
			return nil, fault.InvalidSettlement
		}
		nonce, ok := item.First.Bytes32()
		if !ok {
			return nil, fault.InvalidSettlement
		}
		conditions, err := item.Rest.ToSlice()
		if nil != err {
			return nil, fault.InvalidSettlement
		}

		np := NotarizedPayment{
			Nonce:    nonce,
			Payments: make([]Payment, 0, len(conditions)),
		}
		for _, condition := range conditions {
			payment, err := parsePayment(condition)
			if nil != err {
				return nil, err
			}
			np.Payments = append(np.Payments, payment)
		}
		result = append(result, np)
	}
	return result, nil
}

func parsePayment(condition *clvm.Node) (Payment, error) {
	p := Payment{}
	if !condition.IsPair() || !condition.Rest.IsPair() {
		return p, fault.InvalidSettlement
	}
	puzzleHash, ok := condition.First.Bytes32()
	if !ok {
		return p, fault.InvalidSettlement
	}
	amount, err := condition.Rest.First.Uint64()
	if nil != err {
		return p, err
	}
	p.PuzzleHash = puzzleHash
	p.Amount = amount

	rest := condition.Rest.Rest
	if rest.IsAtom() {
		return p, nil
	}
	memos, err := rest.First.ToSlice()
	if nil != err {
		return p, fault.InvalidSettlement
	}
	for _, memo := range memos {
		if !memo.IsAtom() {
			return p, fault.InvalidSettlement
		}
		p.Memos = append(p.Memos, memo.Atom)
	}
	return p, nil
}

// SettlementSolution - serialised settlement solution, the inverse of
// NotarizedPayments
func SettlementSolution(payments []NotarizedPayment) []byte {
	items := make([]*clvm.Node, 0, len(payments))
	for _, np := range payments {
		conditions := make([]*clvm.Node, 0, len(np.Payments))
		for _, p := range np.Payments {
			condition := []*clvm.Node{
				clvm.NewAtom(p.PuzzleHash[:]),
				clvm.IntAtom(p.Amount),
			}
			if len(p.Memos) > 0 {
				memos := make([]*clvm.Node, 0, len(p.Memos))
				for _, m := range p.Memos {
					memos = append(memos, clvm.NewAtom(m))
				}
				condition = append(condition, clvm.List(memos...))
			}
			conditions = append(conditions, clvm.List(condition...))
		}
		items = append(items, clvm.Cons(clvm.NewAtom(np.Nonce[:]), clvm.List(conditions...)))
	}
	return clvm.Serialize(clvm.List(items...))
}
