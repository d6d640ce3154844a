// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package routing - the distributed peer routing table used for
// discovery
//
// the table never carries offers, it only learns which peers exist and
// how to reach them
package routing

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/peerstore"
	"github.com/libp2p/go-libp2p/core/protocol"
)

// defaults
const (
	DefaultProtocol         = "/splash/kad/1"
	DefaultBootstrapTimeout = 60 * time.Second
)

// Configuration - routing parameters
type Configuration struct {
	Protocol         string
	BootstrapTimeout time.Duration
}

// Table - kademlia routing table bound to a host
type Table struct {
	log     *logger.L
	host    host.Host
	dht     *dht.IpfsDHT
	timeout time.Duration

	once sync.Once
	done chan struct{}
}

// New - create the routing table for a host
func New(ctx context.Context, h host.Host, c Configuration, log *logger.L) (*Table, error) {
	if "" == c.Protocol {
		c.Protocol = DefaultProtocol
	}
	if c.BootstrapTimeout <= 0 {
		c.BootstrapTimeout = DefaultBootstrapTimeout
	}

	d, err := dht.New(ctx, h,
		dht.Mode(dht.ModeAutoServer),
		dht.V1ProtocolOverride(protocol.ID(c.Protocol)),
	)
	if nil != err {
		return nil, err
	}

	log.Infof("routing protocol: %s", c.Protocol)

	return &Table{
		log:     log,
		host:    h,
		dht:     d,
		timeout: c.BootstrapTimeout,
		done:    make(chan struct{}),
	}, nil
}

// DHT - the underlying routing structure, for use as the host's peer
// router
func (t *Table) DHT() *dht.IpfsDHT {
	return t.dht
}

// AddAddress - remember addresses for a peer
func (t *Table) AddAddress(info peer.AddrInfo) {
	if info.ID == t.host.ID() {
		return
	}
	t.host.Peerstore().AddAddrs(info.ID, info.Addrs, peerstore.PermanentAddrTTL)
	t.log.Debugf("add address: %s  %v", info.ID, info.Addrs)
}

// Bootstrap - begin a single bootstrap walk in the background
//
// the walk connects to the seeds and then refreshes the table; it stops
// after the bootstrap timeout and any failure is only logged
func (t *Table) Bootstrap(seeds []peer.AddrInfo) {
	t.once.Do(func() {
		go func() {
			defer close(t.done)
			t.bootstrap(seeds)
		}()
	})
}

// Done - closed when the bootstrap walk has finished
func (t *Table) Done() <-chan struct{} {
	return t.done
}

func (t *Table) bootstrap(seeds []peer.AddrInfo) {
	log := t.log
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	connected := 0
	for _, info := range seeds {
		if info.ID == t.host.ID() {
			continue
		}
		t.AddAddress(info)
		err := t.host.Connect(ctx, info)
		if nil != err {
			log.Warnf("bootstrap connect: %s  error: %s", info.ID, err)
			continue
		}
		connected += 1
	}
	log.Infof("bootstrap connected: %d of %d", connected, len(seeds))

	err := t.dht.Bootstrap(ctx)
	if nil != err {
		log.Warnf("bootstrap error: %s", err)
		return
	}

	select {
	case err := <-t.dht.RefreshRoutingTable():
		if nil != err {
			log.Warnf("refresh routing table error: %s", err)
		}
	case <-ctx.Done():
		log.Warnf("bootstrap timed out after: %s", t.timeout)
	}

	log.Infof("routing table size: %d", t.Size())
}

// Size - number of peers in the routing table
func (t *Table) Size() int {
	return t.dht.RoutingTable().Size()
}

// Close - stop the routing table
func (t *Table) Close() error {
	return t.dht.Close()
}
