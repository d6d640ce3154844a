// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"github.com/mr-tron/base58"
	sha256 "github.com/minio/sha256-simd"

	"github.com/splash-network/splashd/fault"
)

// Summary - the assets an offer moves
type Summary struct {
	ID        string            `json:"id"`
	Offered   map[string]uint64 `json:"offered_assets"`
	Requested map[string]uint64 `json:"requested_assets"`
	Offer     string            `json:"offer_string"`
}

// ID - base58 sha256 digest of the offer text
func ID(raw string) string {
	digest := sha256.Sum256([]byte(raw))
	return base58.Encode(digest[:])
}

// Summarize - decode, classify and total an offer
//
// any failure is returned as a *fault.ParseFailure
func (c *Codec) Summarize(raw string) (*Summary, error) {
	parsed, err := c.Parse(raw)
	if nil != err {
		return nil, &fault.ParseFailure{Err: err}
	}
	summary, err := c.Totals(raw, parsed)
	if nil != err {
		return nil, &fault.ParseFailure{Err: err}
	}
	return summary, nil
}

// Totals - aggregate the amounts of a parsed offer
func (c *Codec) Totals(raw string, parsed *ParsedOffer) (*Summary, error) {
	s := &Summary{
		ID:        ID(raw),
		Offered:   make(map[string]uint64),
		Requested: make(map[string]uint64),
		Offer:     raw,
	}

	for _, cs := range parsed.Offered {
		puzzle, err := cs.Puzzle()
		if nil != err {
			return nil, err
		}
		id := c.Classifier.ID(puzzle)
		total, err := add(s.Offered[id], cs.Coin.Amount)
		if nil != err {
			return nil, err
		}
		s.Offered[id] = total
	}

	for _, r := range parsed.Requested {
		total := s.Requested[r.AssetID]
		for _, np := range r.Payments {
			for _, p := range np.Payments {
				var err error
				total, err = add(total, p.Amount)
				if nil != err {
					return nil, err
				}
			}
		}
		s.Requested[r.AssetID] = total
	}
	return s, nil
}

func add(a uint64, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fault.AmountOverflow
	}
	return sum, nil
}
