// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	corerouting "github.com/libp2p/go-libp2p/core/routing"
	"github.com/libp2p/go-libp2p/p2p/muxer/yamux"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"
	"github.com/libp2p/go-libp2p/p2p/security/noise"
	libp2ptls "github.com/libp2p/go-libp2p/p2p/security/tls"
	libp2pquic "github.com/libp2p/go-libp2p/p2p/transport/quic"
	"github.com/libp2p/go-libp2p/p2p/transport/tcp"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/routing"
	"github.com/splash-network/splashd/util"
)

// host defaults
const (
	DefaultIdentifyProtocol = "/splash/id/1"
	defaultLowWater         = 32
	defaultHighWater        = 128
	connectionGracePeriod   = time.Minute
)

// HostConfiguration - parameters for NewHost
type HostConfiguration struct {
	Listen           []string
	Announce         []string
	IdentifyProtocol string
	LowWater         int
	HighWater        int
	Routing          routing.Configuration
}

// NewHost - create a libp2p host with its routing table attached
func NewHost(ctx context.Context, key crypto.PrivKey, c HostConfiguration, log *logger.L) (host.Host, *routing.Table, error) {
	if nil == key {
		return nil, nil, fault.InvalidPrivateKey
	}

	listen, err := util.ListenMultiaddrs(c.Listen)
	if nil != err {
		return nil, nil, err
	}

	announce := []ma.Multiaddr{}
	for _, a := range c.Announce {
		m, err := ma.NewMultiaddr(a)
		if nil != err {
			log.Errorf("announce: %q  error: %s", a, err)
			return nil, nil, fault.InvalidPeerAddress
		}
		announce = append(announce, m)
	}

	if "" == c.IdentifyProtocol {
		c.IdentifyProtocol = DefaultIdentifyProtocol
	}
	if c.LowWater <= 0 {
		c.LowWater = defaultLowWater
	}
	if c.HighWater <= c.LowWater {
		c.HighWater = c.LowWater * 4
	}

	manager, err := connmgr.NewConnManager(c.LowWater, c.HighWater, connmgr.WithGracePeriod(connectionGracePeriod))
	if nil != err {
		return nil, nil, err
	}

	var table *routing.Table
	routingLog := logger.New("routing")

	options := []libp2p.Option{
		libp2p.Identity(key),
		libp2p.ListenAddrs(listen...),
		libp2p.Transport(tcp.NewTCPTransport),
		libp2p.Transport(libp2pquic.NewTransport),
		libp2p.Security(noise.ID, noise.New),
		libp2p.Security(libp2ptls.ID, libp2ptls.New),
		libp2p.Muxer(yamux.ID, yamux.DefaultTransport),
		libp2p.ConnectionManager(manager),
		libp2p.ProtocolVersion(c.IdentifyProtocol),
		libp2p.Routing(func(h host.Host) (corerouting.PeerRouting, error) {
			t, err := routing.New(ctx, h, c.Routing, routingLog)
			if nil != err {
				return nil, err
			}
			table = t
			return t.DHT(), nil
		}),
	}

	if len(announce) > 0 {
		options = append(options, libp2p.AddrsFactory(func([]ma.Multiaddr) []ma.Multiaddr {
			return announce
		}))
	}

	h, err := libp2p.New(options...)
	if nil != err {
		return nil, nil, err
	}

	log.Infof("host id: %s", h.ID())
	log.Infof("host listening: %s", util.PrintMaAddrs(h.Addrs()))

	return h, table, nil
}
