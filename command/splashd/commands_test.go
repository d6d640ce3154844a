// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/nodes"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/util"
)

func TestDNSTXT(t *testing.T) {
	key, err := util.MakeEd25519PeerKey()
	assert.Nil(t, err, "wrong key")

	options := &Configuration{
		Peering: p2p.Configuration{
			PrivateKey: key,
			Listen:     []string{"/ip4/0.0.0.0/tcp/2136"},
			Announce:   []string{"/ip4/192.0.2.7/tcp/2136", "/dns4/node.example.com/tcp/2136"},
		},
	}

	records, err := dnsTXT(options)
	assert.Nil(t, err, "wrong dnsTXT")
	assert.Equal(t, 2, len(records), "wrong record count")

	privateKey, _ := util.DecodePrivKeyFromHex(key)
	id, _ := peer.IDFromPrivateKey(privateKey)

	for _, r := range records {
		assert.True(t, strings.HasSuffix(r, "/p2p/"+id.String()), "wrong suffix: %s", r)

		// each record must be accepted by the nodes parser
		_, err := nodes.Parse(r)
		assert.Nil(t, err, "record not parsable: %s", r)
	}
}

func TestDNSTXTWhenNoKey(t *testing.T) {
	_, err := dnsTXT(&Configuration{})
	assert.NotNil(t, err, "missing key accepted")
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"), "wrong default")
	assert.Equal(t, "/etc/splashd/rpc.crt", getFilenameWithDirectory([]string{"/etc/splashd"}, "rpc.crt"), "wrong directory")
}
