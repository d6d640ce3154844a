// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing_test

import (
	"context"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/fixtures"
	"github.com/splash-network/splashd/routing"
)

func newHost(t *testing.T) host.Host {
	h, err := libp2p.New(libp2p.ListenAddrStrings("/ip4/127.0.0.1/tcp/0"))
	if nil != err {
		t.Fatalf("create host error: %s", err)
	}
	return h
}

func TestAddAddress(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHost(t)
	defer h.Close()

	table, err := routing.New(context.Background(), h, routing.Configuration{}, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "routing error")
	defer table.Close()

	other := newHost(t)
	defer other.Close()

	table.AddAddress(peer.AddrInfo{ID: other.ID(), Addrs: other.Addrs()})
	assert.Equal(t, len(other.Addrs()), len(h.Peerstore().Addrs(other.ID())), "addresses not stored")

	a, _ := ma.NewMultiaddr("/ip4/192.0.2.1/tcp/2136")
	table.AddAddress(peer.AddrInfo{ID: h.ID(), Addrs: []ma.Multiaddr{a}})
	for _, stored := range h.Peerstore().Addrs(h.ID()) {
		assert.False(t, stored.Equal(a), "own address was added")
	}
}

func TestBootstrapWithoutSeeds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHost(t)
	defer h.Close()

	c := routing.Configuration{
		BootstrapTimeout: 2 * time.Second,
	}
	table, err := routing.New(context.Background(), h, c, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "routing error")
	defer table.Close()

	table.Bootstrap(nil)
	table.Bootstrap(nil)

	select {
	case <-table.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("bootstrap did not finish")
	}
	assert.Equal(t, 0, table.Size(), "routing table not empty")
	assert.Equal(t, 0, len(h.Network().Peers()), "unexpected connections")
}

func TestBootstrapUnreachableSeed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHost(t)
	defer h.Close()

	c := routing.Configuration{
		BootstrapTimeout: 2 * time.Second,
	}
	table, err := routing.New(context.Background(), h, c, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "routing error")
	defer table.Close()

	// a real identity that nothing listens for
	gone := newHost(t)
	seed := peer.AddrInfo{ID: gone.ID(), Addrs: gone.Addrs()}
	gone.Close()

	table.Bootstrap([]peer.AddrInfo{seed})

	select {
	case <-table.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("bootstrap did not finish")
	}
	assert.Equal(t, 0, len(h.Network().Peers()), "connected to a closed host")
}
