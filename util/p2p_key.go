// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/libp2p/go-libp2p/core/crypto"

	"github.com/splash-network/splashd/fault"
)

// MakeEd25519PeerKey - random Ed25519 identity as a hex string
func MakeEd25519PeerKey() (string, error) {
	key, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if nil != err {
		return "", err
	}
	return EncodePrivKeyToHex(key)
}

// DecodePrivKeyFromHex - hex string to private key, surrounding
// whitespace is ignored
func DecodePrivKeyFromHex(privKey string) (crypto.PrivKey, error) {
	keyBytes, err := hex.DecodeString(strings.TrimSpace(privKey))
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	key, err := crypto.UnmarshalPrivateKey(keyBytes)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return key, nil
}

// EncodePrivKeyToHex - private key to hex string
func EncodePrivKeyToHex(privKey crypto.PrivKey) (string, error) {
	keyBytes, err := crypto.MarshalPrivateKey(privKey)
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(keyBytes), nil
}

// PeerKey - the configured identity or a fresh one when blank
func PeerKey(privKey string) (crypto.PrivKey, error) {
	if "" == strings.TrimSpace(privKey) {
		key, _, err := crypto.GenerateEd25519Key(rand.Reader)
		return key, err
	}
	return DecodePrivKeyFromHex(privKey)
}
