// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

// Native - identifier of the native asset
const Native = "xch"

// ItemPrefix - human readable part of a non-fungible item address
const ItemPrefix = "nft"

// Shape - the recognised puzzle shapes
type Shape int

// shapes in order of priority
const (
	NativeShape Shape = iota
	TokenShape
	ItemShape
)

func (s Shape) String() string {
	switch s {
	case TokenShape:
		return "token"
	case ItemShape:
		return "item"
	default:
		return "native"
	}
}

// Classification - shape and canonical identifier of a puzzle
type Classification struct {
	Shape Shape
	ID    string
}

// Classifier - module hashes used to recognise the layers of a puzzle
type Classifier struct {
	TokenModHash     [32]byte
	SingletonModHash [32]byte
	ItemStateModHash [32]byte
	ItemPrefix       string
}

// module hashes of the deployed layers
const (
	tokenModHash     = "37bef360ee858133b69d595a906dc45d01af50379dad515eb9518abb7c1d2a7a"
	singletonModHash = "7faa3253bfddd1e0decb0906b2dc6247bbc4cf608f58345d173adb63e8b47c9f"
	itemStateModHash = "a04d9f57764f54a43e4030befb4d80026e870519aaa66334aef8304f5d0393c2"
)

// Default - classifier for the deployed layers
func Default() *Classifier {
	return &Classifier{
		TokenModHash:     mustHash(tokenModHash),
		SingletonModHash: mustHash(singletonModHash),
		ItemStateModHash: mustHash(itemStateModHash),
		ItemPrefix:       ItemPrefix,
	}
}

// ParseModHash - decode a hex module hash
func ParseModHash(s string) ([32]byte, error) {
	var h [32]byte
	b, err := hex.DecodeString(s)
	if nil != err {
		return h, err
	}
	if len(b) != len(h) {
		return h, fault.InvalidCount
	}
	copy(h[:], b)
	return h, nil
}

func mustHash(s string) [32]byte {
	h, err := ParseModHash(s)
	if nil != err {
		fault.Panicf("invalid module hash: %q  error: %s", s, err)
	}
	return h
}

// ID - canonical identifier of a puzzle
func (c *Classifier) ID(puzzle *clvm.Node) string {
	return c.Classify(puzzle).ID
}

// Classify - try each shape in priority order
func (c *Classifier) Classify(puzzle *clvm.Node) Classification {
	if assetID, ok := c.token(puzzle); ok {
		return Classification{
			Shape: TokenShape,
			ID:    hex.EncodeToString(assetID),
		}
	}
	if launcherID, ok := c.item(puzzle); ok {
		address, err := c.itemAddress(launcherID)
		if nil == err {
			return Classification{
				Shape: ItemShape,
				ID:    address,
			}
		}
	}
	return Classification{
		Shape: NativeShape,
		ID:    Native,
	}
}

// token layer arguments: (mod_hash asset_id inner_puzzle)
func (c *Classifier) token(puzzle *clvm.Node) ([]byte, bool) {
	mod, args, ok := clvm.Uncurry(puzzle)
	if !ok || 3 != len(args) {
		return nil, false
	}
	if clvm.TreeHash(mod) != c.TokenModHash {
		return nil, false
	}
	assetID, ok := args[1].Bytes32()
	if !ok {
		return nil, false
	}
	return assetID[:], true
}

// singleton layer arguments: ((mod_hash . (launcher_id . launcher_puzzle_hash)) inner_puzzle)
// and the inner puzzle must be the item state layer
func (c *Classifier) item(puzzle *clvm.Node) ([]byte, bool) {
	mod, args, ok := clvm.Uncurry(puzzle)
	if !ok || 2 != len(args) {
		return nil, false
	}
	if clvm.TreeHash(mod) != c.SingletonModHash {
		return nil, false
	}

	singletonStruct := args[0]
	if !singletonStruct.IsPair() || !singletonStruct.Rest.IsPair() {
		return nil, false
	}
	launcherID, ok := singletonStruct.Rest.First.Bytes32()
	if !ok {
		return nil, false
	}

	inner, _, ok := clvm.Uncurry(args[1])
	if !ok || clvm.TreeHash(inner) != c.ItemStateModHash {
		return nil, false
	}
	return launcherID[:], true
}

func (c *Classifier) itemAddress(launcherID []byte) (string, error) {
	converted, err := bech32.ConvertBits(launcherID, 8, 5, true)
	if nil != err {
		return "", err
	}
	prefix := c.ItemPrefix
	if "" == prefix {
		prefix = ItemPrefix
	}
	return bech32.EncodeM(prefix, converted)
}
