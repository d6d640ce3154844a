// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/counter"
)

// MetricsNetwork - raw connection count
//
// these count transport connections, a peer may hold several; the
// authoritative peer count is kept by the event loop
type MetricsNetwork struct {
	connCount counter.Counter
}

func (m *MetricsNetwork) networkMonitor(h host.Host, log *logger.L) {
	h.Network().Notify(&network.NotifyBundle{
		ListenF: func(_ network.Network, addr ma.Multiaddr) {
			log.Debugf("listen: %s", addr)
		},
		ConnectedF: func(_ network.Network, conn network.Conn) {
			n := m.connCount.Increment()
			log.Debugf("conn: %s  opened  connections: %d", conn.RemoteMultiaddr(), n)
		},
		DisconnectedF: func(_ network.Network, conn network.Conn) {
			n := m.connCount.Decrement()
			log.Debugf("conn: %s  closed  connections: %d", conn.RemoteMultiaddr(), n)
		},
	})
}

// ConnectionCount - current transport connections
func (m *MetricsNetwork) ConnectionCount() uint64 {
	return m.connCount.Uint64()
}
