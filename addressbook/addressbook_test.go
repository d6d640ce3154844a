// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressbook_test

import (
	"crypto/rand"
	"testing"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/addressbook"
	"github.com/splash-network/splashd/fault"
)

func makeID(t *testing.T) peer.ID {
	key, _, err := crypto.GenerateEd25519Key(rand.Reader)
	assert.NoError(t, err, "key generation error")
	id, err := peer.IDFromPrivateKey(key)
	assert.NoError(t, err, "id error")
	return id
}

func TestNew(t *testing.T) {
	id1 := makeID(t)
	id2 := makeID(t)

	addresses := []string{
		"/ip4/192.0.2.1/tcp/4001/p2p/" + id1.String(),
		"/ip4/192.0.2.2/udp/4001/quic-v1/p2p/" + id2.String(),
		"/ip6/2001:db8::1/tcp/4001/p2p/" + id1.String(),
	}

	b, err := addressbook.New(addresses)
	assert.NoError(t, err, "address book error")
	assert.Equal(t, 3, b.Len(), "wrong length")
	assert.Equal(t, id2, b.Entries()[1].ID, "wrong second id")

	infos := b.AddrInfos()
	assert.Equal(t, 2, len(infos), "wrong peer count")
	assert.Equal(t, id1, infos[0].ID, "wrong first peer")
	assert.Equal(t, 2, len(infos[0].Addrs), "wrong first peer address count")
	assert.Equal(t, "/ip4/192.0.2.1/tcp/4001", infos[0].Addrs[0].String(), "identity not stripped")
	assert.Equal(t, id2, infos[1].ID, "wrong second peer")
}

func TestEmpty(t *testing.T) {
	b, err := addressbook.New(nil)
	assert.NoError(t, err, "empty book error")
	assert.Equal(t, 0, b.Len(), "wrong length")
	assert.Equal(t, 0, len(b.AddrInfos()), "wrong peer count")
}

func TestMissingIdentity(t *testing.T) {
	id := makeID(t)

	_, err := addressbook.New([]string{
		"/ip4/192.0.2.1/tcp/4001/p2p/" + id.String(),
		"/ip4/192.0.2.2/tcp/4001",
	})
	assert.Equal(t, fault.MissingPeerIdentity, err, "missing identity accepted")

	// identity must be the final component
	_, err = addressbook.New([]string{
		"/p2p/" + id.String() + "/p2p-circuit",
	})
	assert.Equal(t, fault.MissingPeerIdentity, err, "relay address accepted")
}

func TestInvalidAddress(t *testing.T) {
	_, err := addressbook.New([]string{"192.0.2.1:4001"})
	assert.Equal(t, fault.InvalidPeerAddress, err, "invalid address accepted")
}
